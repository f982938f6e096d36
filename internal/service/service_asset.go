package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// catalog is the fixed list of assets offered to the front end.
var catalog = []models.Asset{
	{Code: "XYZ3", Name: "Ação XYZ", Type: "Ação", Price: decimal.RequireFromString("25.30")},
	{Code: "ABC11", Name: "Fundo ABC", Type: "FII", Price: decimal.RequireFromString("102.50")},
	{Code: "TESOURO", Name: "Tesouro Direto", Type: "Renda Fixa", Price: decimal.RequireFromString("1000.00")},
}

type assetService struct{}

func NewAssetService() AssetService {
	return &assetService{}
}

// ListAssets returns a copy of the catalog so callers cannot alter it.
func (s *assetService) ListAssets(ctx context.Context) []models.Asset {
	return slices.Clone(catalog)
}
