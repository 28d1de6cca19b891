package adp

// Subset of the ADP Workforce Now worker payload this tool reads.

type workersResponse struct {
	Workers []apiWorker `json:"workers"`
}

type codeValue struct {
	CodeValue string `json:"codeValue"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

func (c codeValue) label() string {
	switch {
	case c.ShortName != "":
		return c.ShortName
	case c.LongName != "":
		return c.LongName
	default:
		return c.CodeValue
	}
}

type idValue struct {
	IDValue string `json:"idValue"`
}

type apiWorker struct {
	AssociateOID string  `json:"associateOID"`
	WorkerID     idValue `json:"workerID"`

	Person struct {
		LegalName     personName  `json:"legalName"`
		PreferredName *personName `json:"preferredName"`
	} `json:"person"`

	BusinessCommunication struct {
		Emails []struct {
			EmailURI string `json:"emailUri"`
		} `json:"emails"`
	} `json:"businessCommunication"`

	WorkerStatus struct {
		StatusCode codeValue `json:"statusCode"`
	} `json:"workerStatus"`

	WorkAssignments []workAssignment `json:"workAssignments"`
}

type personName struct {
	GivenName     string `json:"givenName"`
	FamilyName1   string `json:"familyName1"`
	FormattedName string `json:"formattedName"`
}

type workAssignment struct {
	PrimaryIndicator bool `json:"primaryIndicator"`
	AssignmentStatus struct {
		StatusCode codeValue `json:"statusCode"`
	} `json:"assignmentStatus"`
	JobTitle  string    `json:"jobTitle"`
	JobCode   codeValue `json:"jobCode"`
	ReportsTo []struct {
		AssociateOID        string  `json:"associateOID"`
		WorkerID            idValue `json:"workerID"`
		ReportsToWorkerName struct {
			FormattedName string `json:"formattedName"`
		} `json:"reportsToWorkerName"`
	} `json:"reportsTo"`
	HomeOrganizationalUnits []struct {
		NameCode codeValue `json:"nameCode"`
		TypeCode codeValue `json:"typeCode"`
	} `json:"homeOrganizationalUnits"`
}
