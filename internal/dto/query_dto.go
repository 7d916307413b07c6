// FILE: internal/dto/query_dto.go
package dto

type PreviousMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type GenerateQueryRequest struct {
	Database         string            `json:"database"`
	Schema           string            `json:"schema"`
	Prompt           string            `json:"prompt"`
	PreviousMessages []PreviousMessage `json:"previousMessages"`
}

type GenerateQueryResponse struct {
	Response string `json:"response"`
}
