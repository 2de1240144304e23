package bench

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

// One finished arena game, as stored in the parquet file
type GameRecord struct {
	Game         int32   `parquet:"game" json:"game"`
	Rows         int32   `parquet:"rows" json:"rows"`
	Cols         int32   `parquet:"cols" json:"cols"`
	ForbiddenRow int32   `parquet:"forbidden_row" json:"forbidden_row"`
	ForbiddenCol int32   `parquet:"forbidden_col" json:"forbidden_col"`
	First        string  `parquet:"first,dict" json:"first"`
	Second       string  `parquet:"second,dict" json:"second"`
	Winner       string  `parquet:"winner,dict" json:"winner"` // empty on a draw
	Moves        []int32 `parquet:"moves" json:"moves"`        // columns, in play order
	FinishedAtMs int64   `parquet:"finished_at_ms" json:"finished_at_ms"`
}

func NewGameRecord(cfg c4.Config, info VersusWorkerInfo) GameRecord {
	first, second := info.P1Name, info.P2Name
	if !info.P1First {
		first, second = second, first
	}

	var winner string
	switch info.Result {
	case VersusPl1Win:
		winner = info.P1Name
	case VersusPl2Win:
		winner = info.P2Name
	}

	moves := make([]int32, len(info.Moves))
	for i, m := range info.Moves {
		moves[i] = int32(m.Col)
	}

	return GameRecord{
		Game:         int32(info.Game),
		Rows:         int32(cfg.Rows),
		Cols:         int32(cfg.Cols),
		ForbiddenRow: int32(cfg.Forbidden.Row),
		ForbiddenCol: int32(cfg.Forbidden.Col),
		First:        first,
		Second:       second,
		Winner:       winner,
		Moves:        moves,
		FinishedAtMs: time.Now().UnixMilli(),
	}
}

// Replay the record on a fresh board, fails on an illegal move
func (r GameRecord) Board() (*c4.Board, error) {
	cfg := c4.Config{
		Rows:      int(r.Rows),
		Cols:      int(r.Cols),
		Forbidden: c4.Cell{Row: int(r.ForbiddenRow), Col: int(r.ForbiddenCol)},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	board := c4.NewBoard(cfg)
	for i, col := range r.Moves {
		if !board.Playable(int(col)) {
			return nil, fmt.Errorf("game %d: move %d in full column %d", r.Game, i, col)
		}
		board.ApplyMove(int(col))
	}
	return board, nil
}

// Writes game records to a zstd compressed parquet file, safe for concurrent use
type RecordWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *parquet.GenericWriter[GameRecord]
	rows   int
}

func NewRecordWriter(path string) (*RecordWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}

	w := parquet.NewGenericWriter[GameRecord](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "c4_game_record_v1")

	return &RecordWriter{file: f, writer: w}, nil
}

func (rw *RecordWriter) Write(records ...GameRecord) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer == nil {
		return fmt.Errorf("record writer is closed")
	}
	n, err := rw.writer.Write(records)
	rw.rows += n
	return err
}

func (rw *RecordWriter) Rows() int {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.rows
}

// Flush the footer and close the file, calling Close again is a no-op
func (rw *RecordWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.writer == nil {
		return nil
	}
	closeErr := rw.writer.Close()
	fileErr := rw.file.Close()
	rw.writer, rw.file = nil, nil

	if closeErr != nil {
		return fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close parquet file: %w", fileErr)
	}
	return nil
}

func ReadRecords(path string) ([]GameRecord, error) {
	return parquet.ReadFile[GameRecord](path)
}

// Arena listener storing every finished game, keeps the first write error
type RecordListener struct {
	NopListener
	Config c4.Config
	Writer *RecordWriter

	mu  sync.Mutex
	err error
}

func NewRecordListener(cfg c4.Config, w *RecordWriter) *RecordListener {
	return &RecordListener{Config: cfg, Writer: w}
}

func (rl *RecordListener) OnFinishedGame(info VersusWorkerInfo) {
	if err := rl.Writer.Write(NewGameRecord(rl.Config, info)); err != nil {
		rl.mu.Lock()
		if rl.err == nil {
			rl.err = err
		}
		rl.mu.Unlock()
	}
}

func (rl *RecordListener) Err() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.err
}
