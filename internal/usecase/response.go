package usecase

import "staffq/internal/domain"

// RelevantEmployee is one shortlist match in wire form: the employee fields
// flattened alongside the similarity score.
type RelevantEmployee struct {
	domain.Employee
	SimilarityScore float64 `json:"similarity_score"`
}

// AnswerResponse is the wire form of an answer, shared by the HTTP API and
// CLI JSON output.
type AnswerResponse struct {
	Response          string             `json:"response"`
	RelevantEmployees []RelevantEmployee `json:"relevant_employees"`
	ConfidenceScore   float64            `json:"confidence_score"`
	Source            string             `json:"source"`
}

// NewAnswerResponse converts an answer to its wire form. RelevantEmployees is
// never nil, so an empty shortlist serializes as [].
func NewAnswerResponse(ans domain.Answer) AnswerResponse {
	relevant := make([]RelevantEmployee, len(ans.Shortlist))
	for i, entry := range ans.Shortlist {
		relevant[i] = RelevantEmployee{
			Employee:        entry.Employee,
			SimilarityScore: entry.Score,
		}
	}
	return AnswerResponse{
		Response:          ans.Text,
		RelevantEmployees: relevant,
		ConfidenceScore:   ans.Confidence,
		Source:            ans.Source,
	}
}
