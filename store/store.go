package store

import (
	"fmt"
	"sync"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pendingWrite is one buffered row awaiting the next Flush, captured as a closure over the
// already-converted GORM model so Flush only has to run tx.Create against it.
type pendingWrite func(tx *gorm.DB) error

// Store is the embedded-SQLite implementation of pipeline.Store: one gorm.DB over a
// pure-Go SQLite file (github.com/glebarez/sqlite, no cgo) plus a bbolt side-ledger for
// restart bookkeeping, grounded on marmos91-dittofs's controlplane/store/gorm.go wiring.
//
// Writes are buffered in memory and committed in a single transaction per Flush call, so
// a consumer tick that processes a whole batch opens at most one SQLite transaction
// regardless of how many raw/parsed/error rows it produced, per §3.6.
type Store struct {
	db     *gorm.DB
	ledger *resumeLedger

	mu      sync.Mutex
	pending []pendingWrite
	counts  map[string]uint64
}

// New opens (creating if absent) the SQLite database at config.Path, runs AutoMigrate over
// every model in AllModels, (re)creates the per-variant convenience views, and opens the
// resume ledger if configured.
func New(config Config) (*Store, error) {
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(config.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	if err := createViews(db); err != nil {
		return nil, fmt.Errorf("store: create views: %w", err)
	}

	ledger, err := openResumeLedger(config.LedgerPath)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, ledger: ledger, counts: map[string]uint64{}}, nil
}

func (s *Store) enqueue(table string, write pendingWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, write)
	s.counts[table]++
}

// WriteRawLine buffers a raw_lines row.
func (s *Store) WriteRawLine(l nmea.RawLine) error {
	model := rawLineModel(l)
	s.enqueue(model.TableName(), func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	return nil
}

// WriteParsed buffers a parsed-family row, dispatched by ParsedRecord.Kind.
func (s *Store) WriteParsed(r nmea.ParsedRecord) error {
	model := parsedModel(r)
	if model == nil {
		return fmt.Errorf("store: no table registered for record kind %q", r.Kind)
	}
	tabler, ok := model.(interface{ TableName() string })
	table := "unknown"
	if ok {
		table = tabler.TableName()
	}
	s.enqueue(table, func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	return nil
}

// WriteParseError buffers a parse_errors row.
func (s *Store) WriteParseError(e nmea.ParseError) error {
	model := parseErrorModel(e)
	s.enqueue(model.TableName(), func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	return nil
}

// Flush commits every buffered write in a single transaction and advances the resume
// ledger's per-table counters. A partial failure rolls the whole batch back; the caller
// (pipeline.Consumer) is responsible for the one-retry-then-log-fatal policy of §5.
func (s *Store) Flush() error {
	s.mu.Lock()
	pending := s.pending
	counts := s.counts
	s.pending = nil
	s.counts = map[string]uint64{}
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, write := range pending {
			if err := write(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Put the batch back so a caller-driven retry of Flush resends the same rows.
		s.mu.Lock()
		s.pending = append(pending, s.pending...)
		for table, n := range counts {
			s.counts[table] += n
		}
		s.mu.Unlock()
		return fmt.Errorf("store: flush: %w", err)
	}

	for table, n := range counts {
		if err := s.ledger.advance(table, n); err != nil {
			return fmt.Errorf("store: advance resume ledger: %w", err)
		}
	}
	return nil
}

// ResumeCount reports the last committed row count the resume ledger recorded for table,
// i.e. how much history is already on disk; 0 when no ledger is configured.
func (s *Store) ResumeCount(table string) uint64 {
	return s.ledger.count(table)
}

// Close flushes any remaining buffered writes, then closes the SQLite connection and the
// resume ledger.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	return s.ledger.Close()
}
