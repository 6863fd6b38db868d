package contracts

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/domain/models"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// ArtifactRepository loads compiled contracts from Foundry (out/) or Hardhat
// (artifacts/contracts/) build output
type ArtifactRepository struct {
	roots []string
	cache map[string]*models.Artifact
	mu    sync.Mutex
}

// NewArtifactRepository creates a repository searching the configured artifacts directory,
// or the Foundry and Hardhat defaults under the project root
func NewArtifactRepository(cfg *config.RuntimeConfig) *ArtifactRepository {
	var roots []string
	if cfg.ArtifactsDir != "" {
		roots = []string{cfg.ArtifactsDir}
	} else {
		roots = []string{
			filepath.Join(cfg.ProjectRoot, "out"),
			filepath.Join(cfg.ProjectRoot, "artifacts"),
		}
	}
	return &ArtifactRepository{
		roots: roots,
		cache: make(map[string]*models.Artifact),
	}
}

// GetArtifact returns the artifact of a contract by name
func (r *ArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artifact, ok := r.cache[name]; ok {
		return artifact, nil
	}

	path, err := r.find(name)
	if err != nil {
		return nil, err
	}

	artifact, err := loadArtifact(name, path)
	if err != nil {
		return nil, err
	}
	r.cache[name] = artifact
	return artifact, nil
}

// find locates <Name>.sol/<Name>.json, trying the conventional locations before walking
func (r *ArtifactRepository) find(name string) (string, error) {
	rel := filepath.Join(name+".sol", name+".json")

	for _, root := range r.roots {
		for _, candidate := range []string{
			filepath.Join(root, rel),
			filepath.Join(root, "contracts", rel),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	for _, root := range r.roots {
		found, err := walkFor(root, rel)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	return "", fmt.Errorf("%w: %s (searched %s; did you compile the contracts?)",
		domain.ErrArtifactNotFound, name, strings.Join(r.roots, ", "))
}

var errFound = errors.New("found")

func walkFor(root, rel string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() && (d.Name() == "build-info" || d.Name() == "cache") {
			return fs.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, string(filepath.Separator)+rel) {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to search %s: %w", root, err)
	}
	return found, nil
}

func loadArtifact(name, path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path built from project layout
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var file models.ArtifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", name, err)
	}

	bytecode, err := decodeBytecode(file.Bytecode.Object)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &models.Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsedABI,
		Bytecode: bytecode,
	}, nil
}

func decodeBytecode(object string) ([]byte, error) {
	object = strings.TrimPrefix(object, "0x")
	if object == "" {
		return nil, domain.ErrEmptyBytecode
	}
	if strings.Contains(object, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	bytecode, err := hex.DecodeString(object)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return bytecode, nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*ArtifactRepository)(nil)
