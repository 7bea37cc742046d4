package rest

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickdrop-api/internal/application/ports"
	shareDTO "quickdrop-api/internal/interface/api/rest/dto/share"
	fileDTO "quickdrop-api/internal/interface/api/rest/dto/share_file"
	"quickdrop-api/internal/interface/api/rest/validator"
)

const msgUnknownCode = "invalid or expired access code"

type ShareController struct {
	shareService ports.ShareService
	fileService  ports.ShareFileService
	logger       *zap.Logger
}

func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	fileService ports.ShareFileService,
	logger *zap.Logger,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		fileService:  fileService,
		logger:       logger,
	}

	r.POST(RouteShares, sc.CreateShareHandler)
	r.GET(RouteShare, sc.GetShareHandler)
	r.POST(RouteShare, sc.AppendShareHandler)
	r.POST(RouteShareFiles, sc.AddFilesHandler)

	return sc
}

func (sc *ShareController) CreateShareHandler(c *gin.Context) {
	text := c.PostForm("text_data")
	password := c.PostForm("password")

	res, err := sc.shareService.CreateShare(
		c.Request.Context(),
		text,
		toRawFiles(formFiles(c)),
		password,
	)
	if err != nil {
		respondError(c, sc.logger, "CreateShare()", err, msgUnknownCode)
		return
	}

	c.JSON(http.StatusCreated, shareDTO.CreateResponse{
		Code:        res.Code,
		Message:     "data uploaded successfully",
		FilesCount:  res.FilesCount,
		HasTextData: res.HasTextData,
	})
}

func (sc *ShareController) GetShareHandler(c *gin.Context) {
	code, ok := validator.NormalizeCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownCode})
		return
	}

	view, err := sc.shareService.GetShare(c.Request.Context(), code)
	if err != nil {
		respondError(c, sc.logger, "GetShare()", err, msgUnknownCode)
		return
	}

	c.JSON(http.StatusOK, shareDTO.ToResponseShare(*view))
}

func (sc *ShareController) AppendShareHandler(c *gin.Context) {
	code, ok := validator.NormalizeCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownCode})
		return
	}

	text := c.PostForm("text_data")
	password := c.PostForm("password")

	view, err := sc.shareService.AppendOrAccess(
		c.Request.Context(),
		code,
		text,
		toRawFiles(formFiles(c)),
		password,
	)
	if err != nil {
		respondError(c, sc.logger, "AppendOrAccess()", err, msgUnknownCode)
		return
	}

	c.JSON(http.StatusOK, shareDTO.ToResponseShare(*view))
}

func (sc *ShareController) AddFilesHandler(c *gin.Context) {
	code, ok := validator.NormalizeCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownCode})
		return
	}

	fhs := formFiles(c)
	if len(fhs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	files, err := sc.fileService.AddFiles(c.Request.Context(), code, toRawFiles(fhs))
	if err != nil {
		respondError(c, sc.logger, "AddFiles()", err, msgUnknownCode)
		return
	}

	c.JSON(http.StatusCreated, fileDTO.ResponseData{
		Data: fileDTO.ToResponseFiles(files),
	})
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["files"]
}

func toRawFiles(fhs []*multipart.FileHeader) []ports.RawFile {
	out := make([]ports.RawFile, 0, len(fhs))
	for _, fh := range fhs {
		fh := fh
		out = append(out, ports.RawFile{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out
}
