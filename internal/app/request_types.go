package app

import "ledger-assistant/internal/core"

// RegisterRequest is the input for RegisterUser.
type RegisterRequest struct {
	Mobile string
	Name   string
}

// IngestRequest is an uploaded bill for the identity under Mobile.
type IngestRequest struct {
	Mobile   string
	Document core.Document
}
