// internal/workers/leads/find-decision-maker/models.go
package finddecisionmaker

import "leadscout-workers/internal/enrichment"

type Input struct {
	BusinessName string `json:"businessName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
}

type Output struct {
	Found         bool           `json:"found"`
	LeadID        string         `json:"leadId,omitempty"`
	DecisionMaker *DecisionMaker `json:"decisionMaker,omitempty"`
	Email         *EmailContact  `json:"emailResult,omitempty"`
}

type DecisionMaker struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Confidence int    `json:"confidence"`
	Source     string `json:"source,omitempty"`
}

type EmailContact struct {
	Email      string `json:"email"`
	Confidence int    `json:"confidence"`
	Type       string `json:"type"`
}

func (i *Input) toRequest() enrichment.Request {
	return enrichment.Request{
		BusinessName: i.BusinessName,
		City:         i.City,
		State:        i.State,
		Address:      i.Address,
		Website:      i.Website,
	}
}
