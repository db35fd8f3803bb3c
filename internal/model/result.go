package model

// ResultType represents the category of a result document or sheet.
type ResultType string

const (
	ResultTypeQualification ResultType = "qualification"
	ResultTypeFinal         ResultType = "final"
	ResultTypeGeneral       ResultType = "general"
)

// AllResultTypes returns all defined result types.
func AllResultTypes() []ResultType {
	return []ResultType{
		ResultTypeQualification,
		ResultTypeFinal,
		ResultTypeGeneral,
	}
}

// ResultRecord is one normalized driver result extracted from a document.
// Records carry no identity beyond their fields; duplicates and unsorted
// positions are allowed because the source imposes no such constraints.
type ResultRecord struct {
	FirstName string
	LastName  string
	Position  int
	Score     float64
}

// ParseContext identifies where a batch of records came from. It is built
// once per document (or per sheet) and handed unchanged to the sink.
type ParseContext struct {
	Year        int
	Competition string
	Type        ResultType
}
