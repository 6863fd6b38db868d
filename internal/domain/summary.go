package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Keys of the deployment summary file.
const (
	SummaryKeyDAOToken       = "DAOToken"
	SummaryKeyZKReviewDAO    = "ZKReviewDAO"
	SummaryKeyZKCodeReview   = "ZKCodeReview"
	SummaryKeySampleVerifier = "SampleVerifier"
)

// DefaultSummaryFile is where a deployment summary is written unless configured otherwise.
const DefaultSummaryFile = "deployment-info.json"

// DeploymentSummary maps the deployed contracts to their addresses.
// Field order is the order keys are written in.
type DeploymentSummary struct {
	DAOToken       string `json:"DAOToken" yaml:"DAOToken"`
	ZKReviewDAO    string `json:"ZKReviewDAO" yaml:"ZKReviewDAO"`
	ZKCodeReview   string `json:"ZKCodeReview" yaml:"ZKCodeReview"`
	SampleVerifier string `json:"SampleVerifier" yaml:"SampleVerifier"`
}

// SummaryEntry is a single key/address pair of a summary.
type SummaryEntry struct {
	Key     string
	Address string
}

// Entries returns the summary as ordered key/address pairs.
func (s *DeploymentSummary) Entries() []SummaryEntry {
	return []SummaryEntry{
		{Key: SummaryKeyDAOToken, Address: s.DAOToken},
		{Key: SummaryKeyZKReviewDAO, Address: s.ZKReviewDAO},
		{Key: SummaryKeyZKCodeReview, Address: s.ZKCodeReview},
		{Key: SummaryKeySampleVerifier, Address: s.SampleVerifier},
	}
}

// Validate checks that every address is present and well formed.
func (s *DeploymentSummary) Validate() error {
	for _, entry := range s.Entries() {
		if entry.Address == "" {
			return fmt.Errorf("%w: %s address is empty", ErrInvalidSummary, entry.Key)
		}
		if !common.IsHexAddress(entry.Address) {
			return fmt.Errorf("%w: %s address %q is not a hex address", ErrInvalidSummary, entry.Key, entry.Address)
		}
	}
	return nil
}
