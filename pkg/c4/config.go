package c4

import "fmt"

// Immutable game parameters
type Config struct {
	Rows      int
	Cols      int
	Forbidden Cell
}

// Create a validated config with a forbidden cell at (fr, fc)
func NewConfig(rows, cols, fr, fc int) (Config, error) {
	cfg := Config{Rows: rows, Cols: cols, Forbidden: Cell{fr, fc}}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return fmt.Errorf("%w: rows=%d cols=%d", ErrDimensions, cfg.Rows, cfg.Cols)
	}
	if cfg.Cols > MaxCols {
		return fmt.Errorf("%w: cols=%d exceeds the maximum of %d", ErrDimensions, cfg.Cols, MaxCols)
	}
	if cfg.Forbidden == NoCell {
		return nil
	}
	if !cfg.InBounds(cfg.Forbidden.Row, cfg.Forbidden.Col) {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d board",
			ErrForbiddenCell, cfg.Forbidden.Row, cfg.Forbidden.Col, cfg.Rows, cfg.Cols)
	}
	return nil
}

func (cfg Config) InBounds(r, c int) bool {
	return r >= 0 && r < cfg.Rows && c >= 0 && c < cfg.Cols
}

func (cfg Config) IsForbidden(r, c int) bool {
	return cfg.Forbidden.Row == r && cfg.Forbidden.Col == c
}

// Number of cells on the board
func (cfg Config) Size() int {
	return cfg.Rows * cfg.Cols
}

func (cfg Config) String() string {
	return fmt.Sprintf("%dx%d forbidden=(%d, %d)", cfg.Rows, cfg.Cols, cfg.Forbidden.Row, cfg.Forbidden.Col)
}
