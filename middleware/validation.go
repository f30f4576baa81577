package middleware

import (
	"strconv"

	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

const noteIDKey = "note_id"

// ValidateNoteID rejects requests whose :id is not a positive integer.
func ValidateNoteID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			utils.BadRequest(c, "Invalid note ID")
			return
		}
		c.Set(noteIDKey, id)
		c.Next()
	}
}

// NoteID returns the id parsed by ValidateNoteID.
func NoteID(c *gin.Context) int64 {
	return c.GetInt64(noteIDKey)
}
