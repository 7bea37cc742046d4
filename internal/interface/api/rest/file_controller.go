package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickdrop-api/internal/application/ports"
	"quickdrop-api/internal/interface/api/rest/validator"
)

const msgUnknownFile = "file not found"

type FileController struct {
	fileService ports.ShareFileService
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.ShareFileService,
	logger *zap.Logger,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.GET(RouteFile, fc.GetFileHandler)
	r.DELETE(RouteFile, fc.DeleteFileHandler)

	return fc
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	key := c.Param("key")
	if !validator.IsBlobKey(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownFile})
		return
	}

	content, err := fc.fileService.FetchFile(c.Request.Context(), key)
	if err != nil {
		respondError(c, fc.logger, "FetchFile()", err, msgUnknownFile)
		return
	}

	// PDFs can be previewed inline; everything else downloads.
	disposition := "attachment"
	if c.Query("preview") == "true" && content.File.MimeType == "application/pdf" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, content.File.FileName))

	c.Data(http.StatusOK, content.File.MimeType, content.Data)
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	key := c.Param("key")
	if !validator.IsBlobKey(key) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownFile})
		return
	}

	if err := fc.fileService.DeleteFile(c.Request.Context(), key); err != nil {
		respondError(c, fc.logger, "DeleteFile()", err, msgUnknownFile)
		return
	}

	c.Status(http.StatusNoContent)
}
