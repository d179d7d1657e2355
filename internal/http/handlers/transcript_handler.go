package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

// TranscriptHandler принимает текстовый файл расшифровки звонка и возвращает его содержимое.
// Файл нигде не сохраняется.
type TranscriptHandler struct {
	maxUploadSize int64
}

// NewTranscriptHandler создаёт хэндлер загрузки расшифровки.
func NewTranscriptHandler(maxUploadMB int64) *TranscriptHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 1
	}
	return &TranscriptHandler{maxUploadSize: maxUploadMB << 20}
}

// Upload обслуживает POST /api/transcripts (multipart, поле file).
func (h *TranscriptHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+1024)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		common.RespondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file is larger than %d MB", h.maxUploadSize>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.WithError(err).Error("transcript: не удалось открыть файл")
		common.RespondBadRequest(c, "could not read the file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize))
	if err != nil {
		common.RespondBadRequest(c, "could not read the file")
		return
	}

	// Бинарные форматы (pdf, docx, изображения) распознаются по сигнатуре.
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		common.RespondError(c, http.StatusUnsupportedMediaType, fmt.Sprintf("%s files are not supported, upload a plain text transcript", kind.Extension))
		return
	}
	if !utf8.Valid(data) {
		common.RespondError(c, http.StatusUnsupportedMediaType, "the transcript must be UTF-8 text")
		return
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text, truncated := truncateRunes(text, validation.MaxTranscriptLength)

	common.RespondJSON(c, http.StatusOK, dto.TranscriptResponse{
		FileName:   fileHeader.Filename,
		Transcript: text,
		Truncated:  truncated,
	})
}

func truncateRunes(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:max]), true
}
