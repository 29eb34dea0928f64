package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/tidwall/gjson"
)

// WheelSegment is one slice of the rewards wheel.
type WheelSegment struct {
	Label       string
	RewardType  string
	Value       float64
	Probability float64
	Color       string
}

// WheelConfig is the rewards wheel layout.
type WheelConfig struct {
	Segments []WheelSegment
}

func decodeWheelConfig(r gjson.Result) WheelConfig {
	var cfg WheelConfig
	first(r, "segments", "rewards", "items").ForEach(func(_, s gjson.Result) bool {
		cfg.Segments = append(cfg.Segments, WheelSegment{
			Label:       str(s, "label", "name", "title"),
			RewardType:  str(s, "rewardType", "type"),
			Value:       numOr(s, "value", "amount", "coins"),
			Probability: numOr(s, "probability", "chance", "weight"),
			Color:       str(s, "color"),
		})
		return true
	})
	return cfg
}

// TotalProbability sums segment probabilities in percent.
func (c WheelConfig) TotalProbability() float64 {
	total := 0.0
	for _, s := range c.Segments {
		total += s.Probability
	}
	return total
}

// Validate requires labelled segments whose probabilities add up to 100.
func (c WheelConfig) Validate() error {
	if len(c.Segments) == 0 {
		return errors.New("wheel needs at least one segment")
	}
	var errs []error
	for i, s := range c.Segments {
		if s.Label == "" {
			errs = append(errs, fmt.Errorf("segment %d: label is required", i+1))
		}
		if !finite(s.Probability, s.Value) {
			errs = append(errs, fmt.Errorf("segment %d: values must be numbers", i+1))
		} else if s.Probability < 0 || s.Value < 0 {
			errs = append(errs, fmt.Errorf("segment %d: values must not be negative", i+1))
		}
	}
	if total := c.TotalProbability(); !finite(total) || math.Abs(total-100) > 0.01 {
		errs = append(errs, fmt.Errorf("probabilities add up to %.2f, want 100", total))
	}
	return errors.Join(errs...)
}

// finite reports whether every value is a real number.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SlotSymbol is one reel symbol with its payout.
type SlotSymbol struct {
	Symbol string
	Payout float64
	Weight float64
}

// SlotConfig is the slot machine layout.
type SlotConfig struct {
	Reels   int
	Symbols []SlotSymbol
}

func decodeSlotConfig(r gjson.Result) SlotConfig {
	cfg := SlotConfig{Reels: intOr(r, "reels", "reelCount")}
	first(r, "symbols", "items").ForEach(func(_, s gjson.Result) bool {
		cfg.Symbols = append(cfg.Symbols, SlotSymbol{
			Symbol: str(s, "symbol", "name", "icon"),
			Payout: numOr(s, "payout", "multiplier", "reward"),
			Weight: numOr(s, "weight", "probability"),
		})
		return true
	})
	return cfg
}

// Validate requires at least one reel and one named symbol.
func (c SlotConfig) Validate() error {
	var errs []error
	if c.Reels < 1 {
		errs = append(errs, errors.New("slot needs at least one reel"))
	}
	if len(c.Symbols) == 0 {
		errs = append(errs, errors.New("slot needs at least one symbol"))
	}
	for i, s := range c.Symbols {
		if s.Symbol == "" {
			errs = append(errs, fmt.Errorf("symbol %d: name is required", i+1))
		}
		if !finite(s.Payout, s.Weight) {
			errs = append(errs, fmt.Errorf("symbol %d: values must be numbers", i+1))
		} else if s.Payout < 0 || s.Weight < 0 {
			errs = append(errs, fmt.Errorf("symbol %d: values must not be negative", i+1))
		}
	}
	return errors.Join(errs...)
}

// SpinConfig holds the shared spin game rules.
type SpinConfig struct {
	Enabled         bool
	DailyFreeSpins  int
	SpinCost        float64
	CooldownMinutes int
}

func decodeSpinConfig(r gjson.Result) SpinConfig {
	return SpinConfig{
		Enabled:         boolean(r, "enabled", "isEnabled", "active"),
		DailyFreeSpins:  intOr(r, "dailyFreeSpins", "freeSpins"),
		SpinCost:        numOr(r, "spinCost", "cost"),
		CooldownMinutes: intOr(r, "cooldownMinutes", "cooldown"),
	}
}

// Validate rejects negative limits.
func (c SpinConfig) Validate() error {
	if !finite(c.SpinCost) {
		return errors.New("spin cost must be a number")
	}
	if c.DailyFreeSpins < 0 || c.SpinCost < 0 || c.CooldownMinutes < 0 {
		return errors.New("spin settings must not be negative")
	}
	return nil
}

// GetWheel loads the rewards wheel.
func (c *Client) GetWheel(ctx context.Context) (WheelConfig, error) {
	root, err := c.do(ctx, http.MethodGet, "/wheel", nil)
	if err != nil {
		return WheelConfig{}, err
	}
	item, err := payload(root, "wheel", "config")
	if err != nil {
		return WheelConfig{}, err
	}
	return decodeWheelConfig(item), nil
}

// SaveWheel validates and stores the rewards wheel.
func (c *Client) SaveWheel(ctx context.Context, cfg WheelConfig) error {
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "invalid wheel", err)
	}
	fields := make([]field, 0, len(cfg.Segments)*5)
	for i, s := range cfg.Segments {
		prefix := fmt.Sprintf("segments.%d.", i)
		fields = append(fields,
			field{prefix + "label", s.Label},
			field{prefix + "rewardType", optional(s.RewardType)},
			field{prefix + "value", s.Value},
			field{prefix + "probability", s.Probability},
			field{prefix + "color", optional(s.Color)},
		)
	}
	body, err := encodeBody(fields...)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/wheel", body)
	return err
}

// GetSlot loads the slot machine.
func (c *Client) GetSlot(ctx context.Context) (SlotConfig, error) {
	root, err := c.do(ctx, http.MethodGet, "/slot", nil)
	if err != nil {
		return SlotConfig{}, err
	}
	item, err := payload(root, "slot", "config")
	if err != nil {
		return SlotConfig{}, err
	}
	return decodeSlotConfig(item), nil
}

// SaveSlot validates and stores the slot machine.
func (c *Client) SaveSlot(ctx context.Context, cfg SlotConfig) error {
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "invalid slot", err)
	}
	fields := []field{{"reels", cfg.Reels}}
	for i, s := range cfg.Symbols {
		prefix := fmt.Sprintf("symbols.%d.", i)
		fields = append(fields,
			field{prefix + "symbol", s.Symbol},
			field{prefix + "payout", s.Payout},
			field{prefix + "weight", s.Weight},
		)
	}
	body, err := encodeBody(fields...)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/slot", body)
	return err
}

// GetSpinConfig loads the spin rules.
func (c *Client) GetSpinConfig(ctx context.Context) (SpinConfig, error) {
	root, err := c.do(ctx, http.MethodGet, "/config", nil)
	if err != nil {
		return SpinConfig{}, err
	}
	item, err := payload(root, "config")
	if err != nil {
		return SpinConfig{}, err
	}
	return decodeSpinConfig(item), nil
}

// SaveSpinConfig validates and stores the spin rules.
func (c *Client) SaveSpinConfig(ctx context.Context, cfg SpinConfig) error {
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "invalid spin config", err)
	}
	body, err := encodeBody(
		field{"enabled", cfg.Enabled},
		field{"dailyFreeSpins", cfg.DailyFreeSpins},
		field{"spinCost", cfg.SpinCost},
		field{"cooldownMinutes", cfg.CooldownMinutes},
	)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/config", body)
	return err
}

// ListSpins loads the spin history.
func (c *Client) ListSpins(ctx context.Context) ([]Spin, error) {
	root, err := c.do(ctx, http.MethodGet, "/allspins", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "spins")
	if err != nil {
		return nil, err
	}
	return decodeList("spin", items, decodeSpin)
}

// ClearSpins deletes the whole spin history.
func (c *Client) ClearSpins(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/allspins", nil)
	return err
}

// GetSpin loads one spin.
func (c *Client) GetSpin(ctx context.Context, id string) (Spin, error) {
	root, err := c.do(ctx, http.MethodGet, "/spin/{id}", nil, id)
	if err != nil {
		return Spin{}, err
	}
	item, err := payload(root, "spin")
	if err != nil {
		return Spin{}, err
	}
	return decodeOne("spin", item, decodeSpin)
}

// DeleteSpin removes one spin.
func (c *Client) DeleteSpin(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/spin/{id}", nil, id)
	return err
}
