package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type AssetHandler struct {
	assets  *services.AssetService
	folders *services.FolderService
}

func NewAssetHandler(assets *services.AssetService, folders *services.FolderService) *AssetHandler {
	return &AssetHandler{assets: assets, folders: folders}
}

type fileRequest struct {
	Name         string  `json:"name" binding:"required"`
	FileURL      string  `json:"file_url"`
	FileType     string  `json:"file_type"`
	FileSize     int64   `json:"file_size"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func (r fileRequest) upload() services.FileUpload {
	return services.FileUpload{
		Name:         r.Name,
		FileURL:      r.FileURL,
		FileType:     r.FileType,
		FileSize:     r.FileSize,
		ThumbnailURL: r.ThumbnailURL,
	}
}

func assetDTOs(assets []models.Asset) []dto.AssetDTO {
	views := make([]services.AssetView, len(assets))
	for i, a := range assets {
		views[i] = services.NewAssetView(a)
	}
	return dto.ToAssetDTOs(views)
}

// ListAssets returns the assets of a folder, or the root of every project
func (h *AssetHandler) ListAssets(c *gin.Context) {
	views, err := h.assets.ListAssets(c.Request.Context(), optionalQuery(c, "project_id"), optionalQuery(c, "folder_id"))
	respondList(c, "assets", "assets", dto.ToAssetDTOs(views), err)
}

// UploadAssets records files the client already put in blob storage.
// Files are saved one by one; on a partial failure the saved ones are
// still reported alongside the error.
func (h *AssetHandler) UploadAssets(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UploadAssetsRequest struct {
		ProjectID string        `json:"project_id" binding:"required"`
		FolderID  *string       `json:"folder_id"`
		Files     []fileRequest `json:"files"`
	}

	var req UploadAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UploadAssetsInput{ProjectID: req.ProjectID, FolderID: req.FolderID}
	for _, f := range req.Files {
		input.Files = append(input.Files, f.upload())
	}

	created, err := h.assets.UploadAssets(c.Request.Context(), sess, input)
	if err != nil {
		if len(created) > 0 {
			c.JSON(http.StatusMultiStatus, gin.H{
				"assets": assetDTOs(created),
				"error":  err.Error(),
			})
			return
		}
		respondError(c, "assets", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assets": assetDTOs(created)})
}

// UploadVersion replaces an asset's file and keeps the old one as a version
func (h *AssetHandler) UploadVersion(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UploadVersionRequest struct {
		File               fileRequest `json:"file" binding:"required"`
		ChangesDescription *string     `json:"changes_description"`
	}

	var req UploadVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	asset, err := h.assets.UploadAssetVersion(c.Request.Context(), sess, c.Param("id"), services.UploadVersionInput{
		File:               req.File.upload(),
		ChangesDescription: req.ChangesDescription,
	})
	if err != nil {
		respondError(c, "assets", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssetDTO(services.NewAssetView(*asset)))
}

// ListVersions returns an asset's version history, newest first
func (h *AssetHandler) ListVersions(c *gin.Context) {
	versions, err := h.assets.ListVersions(c.Request.Context(), c.Param("id"))
	respondList(c, "assets", "versions", versions, err)
}

func (h *AssetHandler) ListFolders(c *gin.Context) {
	folders, err := h.folders.ListFolders(c.Request.Context(), optionalQuery(c, "project_id"), optionalQuery(c, "parent_id"))
	respondList(c, "folders", "folders", folders, err)
}

func (h *AssetHandler) CreateFolder(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type CreateFolderRequest struct {
		ProjectID string  `json:"project_id" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		ParentID  *string `json:"parent_id"`
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	folder, err := h.folders.CreateFolder(c.Request.Context(), sess, services.CreateFolderInput{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		ParentID:  req.ParentID,
	})
	if err != nil {
		respondError(c, "folders", err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

// MoveFolder re-parents a folder. A null parent_id moves it to the root.
func (h *AssetHandler) MoveFolder(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type MoveFolderRequest struct {
		ParentID *string `json:"parent_id"`
	}

	var req MoveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	folder, err := h.folders.MoveFolder(c.Request.Context(), sess, c.Param("id"), req.ParentID)
	if err != nil {
		respondError(c, "folders", err)
		return
	}
	c.JSON(http.StatusOK, folder)
}
