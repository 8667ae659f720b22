package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"curtainpro-backend/blobstore"
	"curtainpro-backend/draft"
	"curtainpro-backend/services"
	"curtainpro-backend/utils"
)

var (
	draftService *services.DraftService
	imageStore   blobstore.Store
	notify       *services.NotifyService
)

// Setup wires the shared collaborators before the router starts.
func Setup(drafts *services.DraftService, store blobstore.Store, notifier *services.NotifyService) {
	draftService = drafts
	imageStore = store
	notify = notifier
}

// currentUserID pulls the authenticated clerk id out of the gin context.
// The second return is false when the request was not authenticated; the
// error response has already been written.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// currentDraft resolves the calling clerk's working draft.
func currentDraft(c *gin.Context) (*draft.Draft, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	return draftService.ForUser(id), true
}
