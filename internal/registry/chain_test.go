package registry_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/mocks"
	"github.com/relay-hub/settlement-hub/internal/registry"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

const chainsJSON = `[
	{"id": "ethereum", "vm_type": "ethereum-vm", "depository": "0x4444444444444444444444444444444444444444"},
	{"id": "solana", "vm_type": "solana-vm", "escrow": "So11111111111111111111111111111111111111112"},
	{"id": "bitcoin", "vm_type": "bitcoin-vm", "metadata": {"confirmations": 3}}
]`

func realUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func TestFileSource_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string
		validateFunc func(t *testing.T, reg registry.ChainRegistry)
	}{
		{
			name: "successful load",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("chains.json").Return([]byte(chainsJSON), nil)
				mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).DoAndReturn(realUnmarshal)
			},
			validateFunc: func(t *testing.T, reg registry.ChainRegistry) {
				chain, err := reg.GetChain("ethereum")
				require.NoError(t, err)
				assert.Equal(t, domain.VmTypeEthereum, chain.VmType)
				require.NotNil(t, chain.Depository)
				assert.Nil(t, chain.Escrow)

				chain, err = reg.GetChain("bitcoin")
				require.NoError(t, err)
				assert.Equal(t, float64(3), chain.Metadata["confirmations"])

				chains := reg.Chains()
				require.Len(t, chains, 3)
				assert.Equal(t, "bitcoin", chains[0].ID)
				assert.Equal(t, "solana", chains[2].ID)
			},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("chains.json").Return(nil, assert.AnError)
			},
			expectedErr: "failed to read chains file",
		},
		{
			name: "JSON parse error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				data := []byte(`invalid json`)
				mockFS.EXPECT().ReadFile("chains.json").Return(data, nil)
				mockJSON.EXPECT().Unmarshal(data, gomock.Any()).Return(assert.AnError)
			},
			expectedErr: "failed to parse chains JSON",
		},
		{
			name: "unknown vm type",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("chains.json").Return([]byte(`[{"id": "cosmos", "vm_type": "cosmos-vm"}]`), nil)
				mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).DoAndReturn(realUnmarshal)
			},
			expectedErr: "unsupported vm type",
		},
		{
			name: "duplicate chain id",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("chains.json").Return([]byte(`[
					{"id": "base", "vm_type": "ethereum-vm"},
					{"id": "base", "vm_type": "ethereum-vm"}
				]`), nil)
				mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).DoAndReturn(realUnmarshal)
			},
			expectedErr: "registered twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)
			tt.setupMocks(mockFS, mockJSON)

			reg, err := registry.NewChainRegistry(context.Background(), registry.NewFileSource(mockFS, mockJSON, "chains.json"))
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, reg)
		})
	}
}

func TestChainRegistry_GetChainUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)
	mockFS.EXPECT().ReadFile("chains.json").Return([]byte(chainsJSON), nil)
	mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).DoAndReturn(realUnmarshal)

	reg, err := registry.NewChainRegistry(context.Background(), registry.NewFileSource(mockFS, mockJSON, "chains.json"))
	require.NoError(t, err)

	_, err = reg.GetChain("polygon")
	assert.ErrorIs(t, err, domain.ErrChainNotFound)
	assert.True(t, domain.IsValidationError(err))
}

func TestChainRegistry_ReloadKeepsPreviousSetOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)
	gomock.InOrder(
		mockFS.EXPECT().ReadFile("chains.json").Return([]byte(chainsJSON), nil),
		mockFS.EXPECT().ReadFile("chains.json").Return(nil, assert.AnError),
		mockFS.EXPECT().ReadFile("chains.json").Return([]byte(`[{"id": "tron", "vm_type": "tron-vm"}]`), nil),
	)
	mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).DoAndReturn(realUnmarshal).Times(2)

	ctx := context.Background()
	reg, err := registry.NewChainRegistry(ctx, registry.NewFileSource(mockFS, mockJSON, "chains.json"))
	require.NoError(t, err)

	require.Error(t, reg.Reload(ctx))
	_, err = reg.GetChain("ethereum")
	assert.NoError(t, err)

	require.NoError(t, reg.Reload(ctx))
	_, err = reg.GetChain("ethereum")
	assert.ErrorIs(t, err, domain.ErrChainNotFound)
	chain, err := reg.GetChain("tron")
	require.NoError(t, err)
	assert.Equal(t, domain.VmTypeTron, chain.VmType)
}

type fakeChainStore struct {
	rows []schema.Chain
	err  error
}

func (f *fakeChainStore) ListChains(context.Context) ([]schema.Chain, error) {
	return f.rows, f.err
}

func TestStoreSource_Load(t *testing.T) {
	escrow := "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8"
	store := &fakeChainStore{rows: []schema.Chain{
		{ID: "ton", VmType: "ton-vm", Escrow: &escrow, Metadata: datatypes.JSON(`{"workchain": 0}`)},
		{ID: "sui", VmType: "sui-vm"},
	}}

	reg, err := registry.NewChainRegistry(context.Background(), registry.NewStoreSource(store))
	require.NoError(t, err)

	chain, err := reg.GetChain("ton")
	require.NoError(t, err)
	assert.Equal(t, domain.VmTypeTon, chain.VmType)
	assert.Equal(t, escrow, *chain.Escrow)
	assert.Equal(t, float64(0), chain.Metadata["workchain"])

	store.err = assert.AnError
	assert.Error(t, reg.Reload(context.Background()))
	_, err = reg.GetChain("sui")
	assert.NoError(t, err)
}
