package models

// DocumentMetadata carries document-level information reported by the service.
type DocumentMetadata struct {
	// Pages is the number of pages in the analyzed document.
	Pages int `json:"Pages"`
}

// Document is the aggregate response of the extraction service.
type Document struct {
	// DocumentMetadata is optional and only used for reporting.
	DocumentMetadata *DocumentMetadata `json:"DocumentMetadata,omitempty"`
	// Blocks is the flat block graph in service order.
	Blocks []Block `json:"Blocks"`
}
