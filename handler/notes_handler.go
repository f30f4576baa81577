package handler

import (
	"tenantnotes/dto"
	"tenantnotes/middleware"
	"tenantnotes/model"
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

func currentIdentity(c *gin.Context) (*model.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.RespondError(c, model.ErrUnauthenticated)
	}
	return identity, ok
}

func bindNote(c *gin.Context) (usecase.NoteInput, bool) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, "Title and content are required")
		return usecase.NoteInput{}, false
	}
	return usecase.NoteInput{Title: req.Title, Content: req.Content}, true
}

func ListNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	notes, err := notesService.ListNotes(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"notes": dto.ToNoteResponses(notes)})
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	note, err := notesService.GetNote(c.Request.Context(), identity, middleware.NoteID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"note": dto.ToNoteResponse(note)})
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	input, ok := bindNote(c)
	if !ok {
		return
	}

	note, err := notesService.CreateNote(c.Request.Context(), identity, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, gin.H{
		"message": "Note created successfully",
		"note":    dto.ToNoteResponse(note),
	})
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	input, ok := bindNote(c)
	if !ok {
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), identity, middleware.NoteID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "Note updated successfully",
		"note":    dto.ToNoteResponse(note),
	})
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := notesService.DeleteNote(c.Request.Context(), identity, middleware.NoteID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}
