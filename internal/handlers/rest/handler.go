// Package rest exposes the equipment service over HTTP JSON
package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mimihimesama/item-simulator/internal/entities"
	"github.com/mimihimesama/item-simulator/internal/errors"
	"github.com/mimihimesama/item-simulator/internal/services/equipment"
)

// Handler translates HTTP requests into equipment service calls
type Handler struct {
	service equipment.Service
}

// Config holds the dependencies for the REST handler
type Config struct {
	Service equipment.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Service == nil {
		return errors.InvalidArgument("service cannot be nil")
	}
	return nil
}

// NewHandler creates a new REST handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{service: cfg.Service}, nil
}

// RegisterRoutes attaches all routes under /api
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/characters", h.createCharacter)
	api.GET("/characters", h.listCharacters)
	api.GET("/characters/:characterId", h.getCharacter)
	api.DELETE("/characters/:characterId", h.deleteCharacter)
	api.GET("/characters/:characterId/items", h.listEquippedItems)
	api.POST("/characters/:characterId/equip", h.equipItem)
	api.POST("/characters/:characterId/unequip", h.unequipItem)

	api.POST("/items", h.createItem)
	api.GET("/items", h.listItems)
	api.GET("/items/:itemCode", h.getItem)
	api.PATCH("/items/:itemCode", h.updateItem)
}

// Request bodies

type createCharacterRequest struct {
	Name string `json:"name" binding:"required"`
}

type equipRequest struct {
	ItemCode *int64 `json:"item_code" binding:"required"`
}

type itemStatBody struct {
	Health *int64 `json:"health"`
	Power  *int64 `json:"power"`
}

type createItemRequest struct {
	ItemCode *int64        `json:"item_code" binding:"required"`
	ItemName string        `json:"item_name" binding:"required"`
	ItemStat *itemStatBody `json:"item_stat" binding:"required"`
}

type updateItemRequest struct {
	ItemName *string       `json:"item_name"`
	ItemStat *itemStatBody `json:"item_stat"`
}

// Response projections

type characterSummaryResponse struct {
	CharacterID int64  `json:"character_id"`
	Name        string `json:"name"`
}

type equippedItemResponse struct {
	ItemCode int64  `json:"item_code"`
	ItemName string `json:"item_name"`
}

type characterStateResponse struct {
	Name          string                 `json:"name"`
	Health        int64                  `json:"health"`
	Power         int64                  `json:"power"`
	EquippedItems []equippedItemResponse `json:"equipped_items"`
}

type itemSummaryResponse struct {
	ItemCode int64  `json:"item_code"`
	ItemName string `json:"item_name"`
}

// Character handlers

func (h *Handler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	output, err := h.service.CreateCharacter(c.Request.Context(), &equipment.CreateCharacterInput{
		Name: req.Name,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Character %q has been created!", output.Name),
		"data": gin.H{
			"character_id": output.CharacterID,
		},
	})
}

func (h *Handler) listCharacters(c *gin.Context) {
	output, err := h.service.ListCharacters(c.Request.Context(), &equipment.ListCharactersInput{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	summaries := make([]characterSummaryResponse, 0, len(output.Characters))
	for _, char := range output.Characters {
		summaries = append(summaries, characterSummaryResponse{
			CharacterID: char.CharacterID,
			Name:        char.Name,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, err := characterIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	output, err := h.service.GetCharacter(c.Request.Context(), &equipment.GetCharacterInput{
		CharacterID: id,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"name":   output.Name,
			"health": output.Health,
			"power":  output.Power,
		},
	})
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, err := characterIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	output, err := h.service.DeleteCharacter(c.Request.Context(), &equipment.DeleteCharacterInput{
		CharacterID: id,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Character %q has been deleted.", output.Name),
	})
}

func (h *Handler) listEquippedItems(c *gin.Context) {
	id, err := characterIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	output, err := h.service.ListEquippedItems(c.Request.Context(), &equipment.ListEquippedItemsInput{
		CharacterID: id,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, equippedItemResponses(output.Items))
}

func (h *Handler) equipItem(c *gin.Context) {
	id, err := characterIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	output, err := h.service.EquipItem(c.Request.Context(), &equipment.EquipItemInput{
		CharacterID: id,
		ItemCode:    *req.ItemCode,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Item equipped.",
		"character": characterState(output.Character),
	})
}

func (h *Handler) unequipItem(c *gin.Context) {
	id, err := characterIDParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	output, err := h.service.UnequipItem(c.Request.Context(), &equipment.UnequipItemInput{
		CharacterID: id,
		ItemCode:    *req.ItemCode,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Item unequipped.",
		"character": characterState(output.Character),
	})
}

// Item handlers

func (h *Handler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	_, err := h.service.CreateItem(c.Request.Context(), &equipment.CreateItemInput{
		ItemCode: *req.ItemCode,
		ItemName: req.ItemName,
		ItemStat: entities.ItemStat{
			Health: req.ItemStat.Health,
			Power:  req.ItemStat.Power,
		},
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created.",
	})
}

func (h *Handler) listItems(c *gin.Context) {
	output, err := h.service.ListItems(c.Request.Context(), &equipment.ListItemsInput{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	summaries := make([]itemSummaryResponse, 0, len(output.Items))
	for _, it := range output.Items {
		summaries = append(summaries, itemSummaryResponse{
			ItemCode: it.ItemCode,
			ItemName: it.ItemName,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) getItem(c *gin.Context) {
	code, err := itemCodeParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	output, err := h.service.GetItem(c.Request.Context(), &equipment.GetItemInput{
		ItemCode: code,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_code": output.Item.Code,
		"item_name": output.Item.Name,
		"item_stat": output.Item.Stat,
	})
}

func (h *Handler) updateItem(c *gin.Context) {
	code, err := itemCodeParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	input := &equipment.UpdateItemInput{
		ItemCode: code,
		ItemName: req.ItemName,
	}
	if req.ItemStat != nil {
		input.ItemStat = &equipment.ItemStatPatch{
			Health: req.ItemStat.Health,
			Power:  req.ItemStat.Power,
		}
	}

	if _, err := h.service.UpdateItem(c.Request.Context(), input); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated.",
	})
}

// Helpers

func characterIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("characterId"), 10, 64)
	if err != nil {
		return 0, errors.InvalidArgument("character id must be an integer")
	}
	return id, nil
}

func itemCodeParam(c *gin.Context) (int64, error) {
	code, err := strconv.ParseInt(c.Param("itemCode"), 10, 64)
	if err != nil {
		return 0, errors.InvalidArgument("item code must be an integer")
	}
	return code, nil
}

func characterState(view equipment.CharacterView) characterStateResponse {
	return characterStateResponse{
		Name:          view.Name,
		Health:        view.Health,
		Power:         view.Power,
		EquippedItems: equippedItemResponses(view.EquippedItems),
	}
}

func equippedItemResponses(views []equipment.EquippedItemView) []equippedItemResponse {
	items := make([]equippedItemResponse, 0, len(views))
	for _, v := range views {
		items = append(items, equippedItemResponse{
			ItemCode: v.ItemCode,
			ItemName: v.ItemName,
		})
	}
	return items
}
