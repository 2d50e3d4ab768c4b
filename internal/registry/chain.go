package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// ChainRegistry maps chain ids to their VM type and custody contracts.
// It is built once at process start and shared by reference; Reload swaps the whole set atomically.
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain_registry.go -package=mocks -mock_names=ChainRegistry=MockChainRegistry
type ChainRegistry interface {
	// GetChain returns the chain with the given id, domain.ErrChainNotFound if unknown
	GetChain(id string) (*domain.Chain, error)

	// Chains returns every registered chain ordered by id
	Chains() []domain.Chain

	// Reload re-reads the source and replaces the registered set
	Reload(ctx context.Context) error
}

// Source loads the full set of chains
type Source interface {
	Load(ctx context.Context) ([]domain.Chain, error)
}

type chainRegistry struct {
	source Source

	mu     sync.RWMutex
	chains map[string]domain.Chain
}

// NewChainRegistry creates a registry and performs the initial load
func NewChainRegistry(ctx context.Context, source Source) (ChainRegistry, error) {
	r := &chainRegistry{source: source}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// GetChain returns the chain with the given id
func (r *chainRegistry) GetChain(id string) (*domain.Chain, error) {
	r.mu.RLock()
	chain, ok := r.chains[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotFound, id)
	}
	return &chain, nil
}

// Chains returns every registered chain ordered by id
func (r *chainRegistry) Chains() []domain.Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chains := make([]domain.Chain, 0, len(r.chains))
	for _, chain := range r.chains {
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i].ID < chains[j].ID })
	return chains
}

// Reload re-reads the source and replaces the registered set.
// On failure the previous set stays in place.
func (r *chainRegistry) Reload(ctx context.Context) error {
	loaded, err := r.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chains: %w", err)
	}

	chains := make(map[string]domain.Chain, len(loaded))
	for _, chain := range loaded {
		if chain.ID == "" {
			return fmt.Errorf("chain without id")
		}
		if !chain.VmType.Valid() {
			return fmt.Errorf("chain %s: %w: %q", chain.ID, domain.ErrUnsupportedVmType, chain.VmType)
		}
		if _, dup := chains[chain.ID]; dup {
			return fmt.Errorf("chain %s registered twice", chain.ID)
		}
		chains[chain.ID] = chain
	}

	r.mu.Lock()
	r.chains = chains
	r.mu.Unlock()

	logger.InfoCtx(ctx, "Chain registry loaded", zap.Int("chains", len(chains)))
	return nil
}

// fileSource reads chains from a JSON file holding an array of chains
type fileSource struct {
	fs   adapter.FileSystem
	json adapter.JSON
	path string
}

// NewFileSource creates a Source backed by a JSON file
func NewFileSource(fs adapter.FileSystem, json adapter.JSON, path string) Source {
	return &fileSource{fs: fs, json: json, path: path}
}

func (s *fileSource) Load(_ context.Context) ([]domain.Chain, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	var chains []domain.Chain
	if err := s.json.Unmarshal(data, &chains); err != nil {
		return nil, fmt.Errorf("failed to parse chains JSON: %w", err)
	}
	return chains, nil
}

// ChainStore is the subset of the store the database source needs
type ChainStore interface {
	ListChains(ctx context.Context) ([]schema.Chain, error)
}

// storeSource reads chains from the chains table
type storeSource struct {
	store ChainStore
}

// NewStoreSource creates a Source backed by the chains table
func NewStoreSource(store ChainStore) Source {
	return &storeSource{store: store}
}

func (s *storeSource) Load(ctx context.Context) ([]domain.Chain, error) {
	rows, err := s.store.ListChains(ctx)
	if err != nil {
		return nil, err
	}

	chains := make([]domain.Chain, 0, len(rows))
	for _, row := range rows {
		chain := domain.Chain{
			ID:         row.ID,
			VmType:     domain.VmType(row.VmType),
			Depository: row.Depository,
			Escrow:     row.Escrow,
		}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &chain.Metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata of chain %s: %w", row.ID, err)
			}
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

// StaticSource serves a fixed set of chains
type StaticSource []domain.Chain

func (s StaticSource) Load(_ context.Context) ([]domain.Chain, error) {
	return append([]domain.Chain(nil), s...), nil
}
