package v1

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// DocumentHandler defines the interface for the family document vault
type DocumentHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Download(ctx *gin.Context)
	UpdateMetadata(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	AddComment(ctx *gin.Context)
	ListComments(ctx *gin.Context)
}

type documentHandler struct {
	documentService documents.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService documents.DocumentService) DocumentHandler {
	return &documentHandler{documentService: documentService}
}

// Upload handles the POST request storing a family document
// @Summary Upload a family document
// @Description Stores the file of the multipart "file" field. Medical records are always encrypted at rest.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param familyId formData string true "Family ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param type formData string true "Document type"
// @Param tags formData string false "Comma separated tags"
// @Param encrypt formData bool false "Encrypt at rest"
// @Success 201 {object} DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /family/documents [post]
func (handler *documentHandler) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortBadRequest(ctx, fmt.Sprintf("invalid form data: %v", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortBadRequest(ctx, fmt.Sprintf("could not read file: %v", err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Encryption stays on unless the client explicitly opts out
	encryptField, hasEncrypt := ctx.GetPostForm("encrypt")
	input := &documents.UploadInput{
		FamilyID:    ctx.PostForm("familyId"),
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Type:        documents.Type(strings.ToUpper(ctx.PostForm("type"))),
		Tags:        strutil.SplitList(ctx.PostForm("tags")),
		Encrypt:     !hasEncrypt || strutil.ConvertToBool(encryptField),
	}

	document, err := handler.documentService.Upload(ctx.Request.Context(), currentPrincipal(ctx), input, &documents.Upload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newDocumentResponse(document))
}

// List handles the GET request listing the documents of one family
// @Summary List family documents
// @Tags Document
// @Produce json
// @Param familyId query string true "Family ID"
// @Param type query string false "Comma separated document types"
// @Param search query string false "Matches title, description and file name"
// @Param tags query string false "Comma separated tags, any of which must match"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sortBy query string false "createdAt, updatedAt, title or fileSize"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} DocumentPageResponse
// @Failure 400 {object} ErrorResponse
// @Router /family/documents [get]
func (handler *documentHandler) List(ctx *gin.Context) {
	query := documents.NewQuery(ctx.Query("familyId"))

	for _, t := range strutil.SplitCSV(ctx.Query("type")) {
		query.Types = append(query.Types, documents.Type(t))
	}
	query.Search = ctx.Query("search")
	query.Tags = strutil.SplitList(ctx.Query("tags"))
	if page := ctx.Query("page"); len(page) > 0 {
		query.Page = strutil.ConvertToInt(page)
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = strings.ToLower(sortOrder)
	}

	page, err := handler.documentService.List(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []DocumentResponse{}
	for _, document := range page.Documents {
		listResponse = append(listResponse, newDocumentResponse(document))
	}
	ctx.JSON(http.StatusOK, DocumentPageResponse{
		Documents: listResponse,
		Pagination: PaginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}

func (handler *documentHandler) GetByID(ctx *gin.Context) {
	document, err := handler.documentService.Get(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

// Download streams the decrypted file as an attachment
func (handler *documentHandler) Download(ctx *gin.Context) {
	download, err := handler.documentService.Download(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": download.Document.FileName})
	ctx.Header("Content-Disposition", disposition)
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, download.Document.ContentType, download.Content)
}

func (handler *documentHandler) UpdateMetadata(ctx *gin.Context) {
	var request UpdateDocumentRequest
	if !bindRequest(ctx, &request) {
		return
	}

	update := &documents.MetadataUpdate{
		Title:       request.Title,
		Description: request.Description,
		Tags:        request.Tags,
	}
	if request.Type != nil {
		t := documents.Type(*request.Type)
		update.Type = &t
	}

	document, err := handler.documentService.UpdateMetadata(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), update)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *documentHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.documentService.Delete(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id")); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("deleted document with id %s", ctx.Param("id"))})
}

func (handler *documentHandler) AddComment(ctx *gin.Context) {
	var request CommentRequest
	if !bindRequest(ctx, &request) {
		return
	}

	comment, err := handler.documentService.AddComment(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.Content)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newCommentResponse(comment))
}

func (handler *documentHandler) ListComments(ctx *gin.Context) {
	comments, err := handler.documentService.ListComments(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []CommentResponse{}
	for _, comment := range comments {
		listResponse = append(listResponse, newCommentResponse(comment))
	}
	ctx.JSON(http.StatusOK, listResponse)
}
