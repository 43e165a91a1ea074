package handler

import (
	"main/dto"
	"main/middleware"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ListInventoryHandler returns the subject's personal catalog grouped
// by category.
func ListInventoryHandler(c *gin.Context, checklist *services.ChecklistService) {
	user := middleware.CurrentUser(c)

	grouped, err := checklist.ListInventory(c.Request.Context(), user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to list inventory")
		return
	}

	utils.Success(c, "Inventory", dto.ToInventoryResponse(grouped))
}

// CreateItemHandler registers a new catalog item for the subject.
func CreateItemHandler(c *gin.Context, checklist *services.ChecklistService) {
	user := middleware.CurrentUser(c)

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	item, err := checklist.CreateItem(c.Request.Context(), user.UserID,
		req.Category, req.Label, req.SerialRef, req.ReferencePhoto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Item registered", dto.ToInventoryItemResponse(item))
}

// AddEntryHandler declares an item present on the current session.
// Safe to retry: a present entry is returned as-is, a withdrawn one is
// reactivated.
func AddEntryHandler(c *gin.Context, checklist *services.ChecklistService) {
	session := middleware.CurrentZoneSession(c)

	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	entry, err := checklist.Add(c.Request.Context(), session, req.ItemID, req.Notes, req.EvidencePhoto)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Item declared", dto.ToChecklistEntryResponse(entry))
}

// RemoveEntryHandler withdraws an item from the current session.
func RemoveEntryHandler(c *gin.Context, checklist *services.ChecklistService) {
	session := middleware.CurrentZoneSession(c)

	var req dto.RemoveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	removed, err := checklist.Remove(c.Request.Context(), session, req.ItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Item withdrawn"
	if !removed {
		message = "Item was not on the checklist"
	}
	utils.Success(c, message, gin.H{"removed": removed})
}

// BulkChecklistHandler applies ADD or REMOVE over a list of items,
// reporting partial failures instead of aborting the batch.
func BulkChecklistHandler(c *gin.Context, checklist *services.ChecklistService) {
	session := middleware.CurrentZoneSession(c)

	var req dto.BulkChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	result, err := checklist.Bulk(c.Request.Context(), session, req.ItemIDs, req.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Bulk checklist processed", result)
}

// ListEntriesHandler returns the session's checklist, present and
// withdrawn entries alike.
func ListEntriesHandler(c *gin.Context, checklist *services.ChecklistService) {
	session := middleware.CurrentZoneSession(c)

	entries, err := checklist.List(c.Request.Context(), session)
	if err != nil {
		utils.InternalError(c, "Failed to list checklist")
		return
	}

	utils.Success(c, "Checklist", dto.ToChecklistEntryResponses(entries))
}

// FinalizeChecklistHandler advances the session into the zone once any
// equipment is declared.
func FinalizeChecklistHandler(c *gin.Context, zone *services.ZoneService) {
	session := middleware.CurrentZoneSession(c)

	activated, err := zone.FinalizeChecklist(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Checklist finalized, entry complete", dto.ToZoneSessionResponse(activated))
}
