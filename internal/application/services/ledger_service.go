package services

import (
	"context"
	"fmt"

	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// LedgerService is the balance engine: it owns exclusive write access to the
// asset/liability singletons and mutates them only through the
// reverse/apply protocol, except for the explicit manual override.
type LedgerService struct {
	ledgerRepo ports.LedgerRepository
	logger     *logger.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo ports.LedgerRepository, logger *logger.Logger) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// ListEntries returns all entries ordered by record_date desc, id desc.
func (s *LedgerService) ListEntries(ctx context.Context) ([]*entities.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *LedgerService) buildEntry(req ports.CreateLedgerEntryRequest) (*entities.LedgerEntry, error) {
	recordType := entities.RecordType(req.RecordType)
	if !recordType.IsValid() {
		return nil, fmt.Errorf("record_type %q: %w", req.RecordType, entities.ErrInvalidRecordType)
	}

	recordDate := entities.Today()
	if req.RecordDate != "" {
		parsed, err := entities.ParseCalendarDate(req.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("record_date %q: %w", req.RecordDate, err)
		}
		recordDate = entities.FormatDate(parsed)
	}

	return &entities.LedgerEntry{
		Item:       req.Item,
		Amount:     req.Amount,
		Interest:   req.Interest,
		RecordType: recordType,
		RecordDate: recordDate,
		Category:   req.Category,
		Notes:      req.Notes,
	}, nil
}

// CreateEntry stores a new entry and applies its effect to both aggregates
// in one transaction.
func (s *LedgerService) CreateEntry(ctx context.Context, req ports.CreateLedgerEntryRequest) (*entities.LedgerEntry, error) {
	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = nowTimestamp()

	assetDelta, liabilityDelta := entry.Effect()
	if err := s.ledgerRepo.CreateEntry(ctx, entry, assetDelta, liabilityDelta); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	s.logger.Info("Ledger entry created", "entry_id", entry.ID,
		"record_type", entry.RecordType, "amount", entry.Amount)

	return entry, nil
}

// UpdateEntry replaces a stored entry. The stored effect is reversed using
// the pre-update record_type/amount/interest, then the new effect is applied,
// so switching category (expense to income and the like) nets correctly.
func (s *LedgerService) UpdateEntry(ctx context.Context, id int, req ports.UpdateLedgerEntryRequest) (*entities.LedgerEntry, error) {
	replacement, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.ledgerRepo.UpdateEntry(ctx, id, func(stored *entities.LedgerEntry) (*entities.LedgerEntry, float64, float64, error) {
		oldAsset, oldLiability := stored.Effect()
		newAsset, newLiability := replacement.Effect()
		return replacement, newAsset - oldAsset, newLiability - oldLiability, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry updated", "entry_id", id,
		"record_type", updated.RecordType, "amount", updated.Amount)

	return updated, nil
}

// DeleteEntry reverses the stored entry's effect and removes the row.
func (s *LedgerService) DeleteEntry(ctx context.Context, id int) error {
	err := s.ledgerRepo.DeleteEntry(ctx, id, func(stored *entities.LedgerEntry) (float64, float64) {
		assetDelta, liabilityDelta := stored.Effect()
		return -assetDelta, -liabilityDelta
	})
	if err != nil {
		return err
	}

	s.logger.Info("Ledger entry deleted", "entry_id", id)

	return nil
}

// GetBalance reads a singleton aggregate, materializing it at zero if absent.
func (s *LedgerService) GetBalance(ctx context.Context, kind entities.BalanceKind) (*entities.Balance, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s balance: %w", kind, err)
	}
	return balance, nil
}

// OverwriteBalance is the manual-correction escape hatch. It bypasses the
// ledger derivation invariant on purpose.
func (s *LedgerService) OverwriteBalance(ctx context.Context, kind entities.BalanceKind, amount float64) (*entities.Balance, error) {
	balance, err := s.ledgerRepo.SetBalance(ctx, kind, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to overwrite %s balance: %w", kind, err)
	}

	s.logger.Warn("Balance manually overwritten", "kind", kind, "amount", amount)

	return balance, nil
}
