package services

import (
	"context"
	"fmt"
	"time"

	"main/model"

	"github.com/google/uuid"
)

// ChecklistService tracks which catalog items are declared present
// during a session. Add and Remove are idempotent by design: the
// handheld entry flow retries freely.
type ChecklistService struct {
	Entries   ChecklistStore
	Inventory InventoryStore
}

// Add declares an item present. Re-adding a withdrawn entry
// reactivates it; re-adding a present one is a no-op returning the
// existing entry. The catalog reference photo serves as default
// evidence when none is supplied.
func (s *ChecklistService) Add(ctx context.Context, session *model.ZoneSession, itemID, notes, evidencePhoto string) (*model.ChecklistEntry, error) {
	item, err := s.Inventory.FindItem(ctx, itemID, session.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up inventory item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item does not exist or is not yours", ErrNotFound)
	}

	if evidencePhoto == "" {
		evidencePhoto = item.ReferencePhoto
	}

	entry, err := s.Entries.FindEntry(ctx, session.SessionID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up checklist entry: %w", err)
	}

	if entry == nil {
		now := time.Now()
		entry = &model.ChecklistEntry{
			EntryID:       uuid.New().String(),
			SessionID:     session.SessionID,
			ItemID:        itemID,
			Status:        model.EntryPresent,
			Notes:         notes,
			EvidencePhoto: evidencePhoto,
			AddedAt:       now,
			UpdatedAt:     now,
		}
		if err := s.Entries.InsertEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to create checklist entry: %w", err)
		}
		return entry, nil
	}

	if entry.Status == model.EntryWithdrawn {
		if err := s.Entries.SetEntryStatus(ctx, entry.EntryID, model.EntryPresent, notes, evidencePhoto); err != nil {
			return nil, fmt.Errorf("failed to reactivate checklist entry: %w", err)
		}
		entry.Status = model.EntryPresent
		entry.Notes = notes
		entry.EvidencePhoto = evidencePhoto
	}

	return entry, nil
}

// Remove withdraws an item. Returns false, without error, when the
// entry was already absent or withdrawn.
func (s *ChecklistService) Remove(ctx context.Context, session *model.ZoneSession, itemID string) (bool, error) {
	entry, err := s.Entries.FindEntry(ctx, session.SessionID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to look up checklist entry: %w", err)
	}
	if entry == nil || entry.Status == model.EntryWithdrawn {
		return false, nil
	}

	if err := s.Entries.SetEntryStatus(ctx, entry.EntryID, model.EntryWithdrawn, entry.Notes, entry.EvidencePhoto); err != nil {
		return false, fmt.Errorf("failed to withdraw checklist entry: %w", err)
	}
	return true, nil
}

// Bulk actions.
const (
	BulkAdd    = "ADD"
	BulkRemove = "REMOVE"
)

type BulkFailure struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

type BulkResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []BulkFailure `json:"failures,omitempty"`
}

// Bulk applies the action per item, counting partial results instead
// of aborting the whole batch on one failure.
func (s *ChecklistService) Bulk(ctx context.Context, session *model.ZoneSession, itemIDs []string, action string) (*BulkResult, error) {
	if action != BulkAdd && action != BulkRemove {
		return nil, fmt.Errorf("%w: unknown bulk action %q", ErrPrecondition, action)
	}

	result := &BulkResult{}
	for _, itemID := range itemIDs {
		var err error
		if action == BulkAdd {
			_, err = s.Add(ctx, session, itemID, "", "")
		} else {
			_, err = s.Remove(ctx, session, itemID)
		}
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BulkFailure{ItemID: itemID, Reason: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// List returns the session's entries, present and withdrawn.
func (s *ChecklistService) List(ctx context.Context, session *model.ZoneSession) ([]*model.ChecklistEntry, error) {
	return s.Entries.ListEntries(ctx, session.SessionID)
}

// CreateItem adds a catalog item to the subject's personal inventory.
func (s *ChecklistService) CreateItem(ctx context.Context, ownerID, category, label, serialRef, referencePhoto string) (*model.InventoryItem, error) {
	if category != model.CategoryTool && category != model.CategoryCompute {
		return nil, fmt.Errorf("%w: invalid category %q", ErrPrecondition, category)
	}
	if label == "" || serialRef == "" {
		return nil, fmt.Errorf("%w: label and serial are required", ErrPrecondition)
	}

	item := &model.InventoryItem{
		ItemID:         uuid.New().String(),
		OwnerID:        ownerID,
		Category:       category,
		Label:          label,
		SerialRef:      serialRef,
		ReferencePhoto: referencePhoto,
		CreatedAt:      time.Now(),
	}
	if err := s.Inventory.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// ListInventory returns the subject's catalog grouped by category, the
// shape the entry screen consumes.
func (s *ChecklistService) ListInventory(ctx context.Context, ownerID string) (map[string][]*model.InventoryItem, error) {
	items, err := s.Inventory.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	grouped := map[string][]*model.InventoryItem{
		model.CategoryTool:    {},
		model.CategoryCompute: {},
	}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped, nil
}
