package v1

import (
	"fmt"
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// MessageHandler defines the interface for direct messaging
type MessageHandler interface {
	Send(ctx *gin.Context)
	ListConversations(ctx *gin.Context)
	ListThread(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
}

type messageHandler struct {
	messageService messages.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService messages.MessageService) MessageHandler {
	return &messageHandler{messageService: messageService}
}

func (handler *messageHandler) Send(ctx *gin.Context) {
	var request SendMessageRequest
	if !bindRequest(ctx, &request) {
		return
	}

	message, err := handler.messageService.Send(ctx.Request.Context(), currentPrincipal(ctx), &messages.SendInput{
		RecipientID: request.RecipientID,
		Content:     request.Content,
		LeadID:      request.LeadID,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newMessageResponse(message))
}

func (handler *messageHandler) ListConversations(ctx *gin.Context) {
	conversations, err := handler.messageService.ListConversations(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ConversationResponse{}
	for _, conversation := range conversations {
		response := ConversationResponse{PartnerID: conversation.PartnerID, UnreadCount: conversation.UnreadCount}
		if conversation.LastMessage != nil {
			last := newMessageResponse(conversation.LastMessage)
			response.LastMessage = &last
		}
		listResponse = append(listResponse, response)
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// ListThread returns the messages exchanged with one user, newest first, and marks
// the ones received from them as read
func (handler *messageHandler) ListThread(ctx *gin.Context) {
	query := &messages.ThreadQuery{
		WithUserID: ctx.Param("userId"),
		Limit:      strutil.ConvertToInt(ctx.Query("limit")),
	}
	if before := ctx.Query("before"); len(before) > 0 {
		t, ok := strutil.ParseTime(before)
		if !ok {
			abortBadRequest(ctx, fmt.Sprintf("invalid before timestamp %q", before))
			return
		}
		query.Before = &t
	}

	thread, err := handler.messageService.ListThread(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []MessageResponse{}
	for _, message := range thread {
		listResponse = append(listResponse, newMessageResponse(message))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *messageHandler) UnreadCount(ctx *gin.Context) {
	count, err := handler.messageService.UnreadCount(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}
