package dto

import (
	"time"

	"main/model"
)

type AddEntryRequest struct {
	ItemID        string `json:"item_id" binding:"required"`
	Notes         string `json:"notes"`
	EvidencePhoto string `json:"evidence_photo"`
}

type RemoveEntryRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type BulkChecklistRequest struct {
	Action  string   `json:"action" binding:"required,oneof=ADD REMOVE"`
	ItemIDs []string `json:"item_ids" binding:"required,min=1"`
}

type CreateItemRequest struct {
	Category       string `json:"category" binding:"required,oneof=TOOL COMPUTE"`
	Label          string `json:"label" binding:"required"`
	SerialRef      string `json:"serial_ref" binding:"required"`
	ReferencePhoto string `json:"reference_photo"`
}

type ChecklistEntryResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	EvidencePhoto string    `json:"evidence_photo,omitempty"`
	AddedAt       time.Time `json:"added_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToChecklistEntryResponse(entry *model.ChecklistEntry) ChecklistEntryResponse {
	return ChecklistEntryResponse{
		ID:            entry.EntryID,
		ItemID:        entry.ItemID,
		Status:        entry.Status,
		Notes:         entry.Notes,
		EvidencePhoto: entry.EvidencePhoto,
		AddedAt:       entry.AddedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

func ToChecklistEntryResponses(entries []*model.ChecklistEntry) []ChecklistEntryResponse {
	responses := make([]ChecklistEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToChecklistEntryResponse(entry)
	}
	return responses
}

type InventoryItemResponse struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Label          string    `json:"label"`
	SerialRef      string    `json:"serial_ref"`
	ReferencePhoto string    `json:"reference_photo,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToInventoryItemResponse(item *model.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:             item.ItemID,
		Category:       item.Category,
		Label:          item.Label,
		SerialRef:      item.SerialRef,
		ReferencePhoto: item.ReferencePhoto,
		CreatedAt:      item.CreatedAt,
	}
}

// ToInventoryResponse keeps the category grouping the entry screen
// renders section by section.
func ToInventoryResponse(grouped map[string][]*model.InventoryItem) map[string][]InventoryItemResponse {
	out := make(map[string][]InventoryItemResponse, len(grouped))
	for category, items := range grouped {
		responses := make([]InventoryItemResponse, len(items))
		for i, item := range items {
			responses[i] = ToInventoryItemResponse(item)
		}
		out[category] = responses
	}
	return out
}
