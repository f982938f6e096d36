package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "semantic version", version: "1.4.0"},
		{name: "build metadata", version: "v1.2.3-beta+build.42"},
		{name: "empty version", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestAssetService_ListAssets(t *testing.T) {
	svc := NewAssetService()

	assets := svc.ListAssets(context.Background())
	require.Len(t, assets, 3)
	assert.Equal(t, "XYZ3", assets[0].Code)
	assert.Equal(t, "25.3", assets[0].Price.String())

	assets[0].Code = "changed"
	assert.Equal(t, "XYZ3", svc.ListAssets(context.Background())[0].Code, "catalog must not be shared")
}
