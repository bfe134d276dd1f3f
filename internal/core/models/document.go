package models

// Document — тариф, договор или чек.
type Document struct {
	URL      string `json:"url" validate:"required,http_url,max=2083"`
	Document string `json:"document"`
}
