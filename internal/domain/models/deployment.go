package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkreview/zkr-cli/internal/domain"
)

// DeployedContract is a contract whose creation transaction was confirmed
type DeployedContract struct {
	Name    string
	Address common.Address
	TxHash  common.Hash
}

// StepRecord records the outcome of one executed deployment step
type StepRecord struct {
	Step     domain.Step
	Contract string
	Address  common.Address // created contract for deploys, called contract for calls
	TxHash   common.Hash
	Duration time.Duration
}
