package api

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
)

// CoinPackageInput carries a new coin package.
type CoinPackageInput struct {
	Name   string
	Coins  float64
	Price  float64
	Bonus  float64
	Active bool
}

// CampaignPackageInput carries a new campaign package.
type CampaignPackageInput struct {
	Name         string
	Price        float64
	DurationDays int
	Reach        float64
	Active       bool
}

// ListCoinPackages loads every coin package.
func (c *Client) ListCoinPackages(ctx context.Context) ([]CoinPackage, error) {
	root, err := c.do(ctx, http.MethodGet, "/admin/packages", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "packages")
	if err != nil {
		return nil, err
	}
	return decodeList("coin package", items, decodeCoinPackage)
}

// CreateCoinPackage adds a coin package.
func (c *Client) CreateCoinPackage(ctx context.Context, in CoinPackageInput) (CoinPackage, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CoinPackage{}, false, apperrors.WithMetadata(apperrors.CodeValidation, "name is required", map[string]string{"field": "name"})
	}
	if in.Coins <= 0 || in.Price < 0 || in.Bonus < 0 {
		return CoinPackage{}, false, apperrors.New(apperrors.CodeValidation, "coins must be positive and price must not be negative")
	}
	body, err := encodeBody(
		field{"name", name},
		field{"coins", in.Coins},
		field{"price", in.Price},
		field{"bonus", in.Bonus},
		field{"isActive", in.Active},
	)
	if err != nil {
		return CoinPackage{}, false, err
	}
	root, err := c.do(ctx, http.MethodPost, "/admin/packages", body)
	if err != nil {
		return CoinPackage{}, false, err
	}
	return decodeResult("coin package", root, decodeCoinPackage, "package")
}

// ListCampaignPackages loads every campaign package.
func (c *Client) ListCampaignPackages(ctx context.Context) ([]CampaignPackage, error) {
	root, err := c.do(ctx, http.MethodGet, "/campaign-packages", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "packages", "campaignPackages")
	if err != nil {
		return nil, err
	}
	return decodeList("campaign package", items, decodeCampaignPackage)
}

// CreateCampaignPackage adds a campaign package.
func (c *Client) CreateCampaignPackage(ctx context.Context, in CampaignPackageInput) (CampaignPackage, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CampaignPackage{}, false, apperrors.WithMetadata(apperrors.CodeValidation, "name is required", map[string]string{"field": "name"})
	}
	if in.DurationDays <= 0 || in.Price < 0 || in.Reach < 0 {
		return CampaignPackage{}, false, apperrors.New(apperrors.CodeValidation, "duration must be positive and price must not be negative")
	}
	body, err := encodeBody(
		field{"name", name},
		field{"price", in.Price},
		field{"durationDays", in.DurationDays},
		field{"reach", in.Reach},
		field{"isActive", in.Active},
	)
	if err != nil {
		return CampaignPackage{}, false, err
	}
	root, err := c.do(ctx, http.MethodPost, "/campaign-packages", body)
	if err != nil {
		return CampaignPackage{}, false, err
	}
	return decodeResult("campaign package", root, decodeCampaignPackage, "package", "campaignPackage")
}
