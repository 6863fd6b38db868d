package models

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BytecodeObject represents bytecode in a compiler artifact. Foundry writes an object
// with an "object" field, Hardhat writes the hex string directly.
type BytecodeObject struct {
	Object    string `json:"object"`
	SourceMap string `json:"sourceMap,omitempty"`
}

// UnmarshalJSON accepts both the Foundry object form and the Hardhat string form.
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// ArtifactFile is the raw JSON layout shared by Foundry and Hardhat artifacts
type ArtifactFile struct {
	ContractName string          `json:"contractName,omitempty"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeObject  `json:"bytecode"`
}

// Artifact is a compiled contract ready for deployment
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}

// HasMethod reports whether the ABI declares the given method.
func (a *Artifact) HasMethod(name string) bool {
	_, ok := a.ABI.Methods[name]
	return ok
}
