package contacts

import (
	"encoding/csv"
	"io"
	"net/http"

	"github.com/emersion/go-vcard"
	"github.com/gin-gonic/gin"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/middleware"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/respond"
)

var exportHeader = []string{"name", "email", "phone", "category", "birthday", "company", "photoUrl"}

func (h *Handler) export(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "vcard" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be csv or vcard", nil)
		return
	}

	out, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export contacts", nil)
		return
	}

	if format == "vcard" {
		c.Header("Content-Type", "text/vcard; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="contacts.vcf"`)
		c.Status(http.StatusOK)
		err = writeVCards(c.Writer, out)
	} else {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
		c.Status(http.StatusOK)
		err = writeCSV(c.Writer, out)
	}
	if err != nil {
		_ = c.Error(err)
	}
}

func writeCSV(w io.Writer, out []Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, contact := range out {
		row := []string{
			contact.Name,
			contact.Email,
			contact.Phone,
			deref(contact.Category),
			deref(contact.Birthday),
			deref(contact.Company),
			deref(contact.PhotoURL),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeVCards(w io.Writer, out []Contact) error {
	enc := vcard.NewEncoder(w)
	for _, contact := range out {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldFormattedName, contact.Name)
		if contact.Email != "" {
			card.SetValue(vcard.FieldEmail, contact.Email)
		}
		if contact.Phone != "" {
			card.SetValue(vcard.FieldTelephone, contact.Phone)
		}
		if v := deref(contact.Category); v != "" {
			card.SetValue(vcard.FieldCategories, v)
		}
		if v := deref(contact.Birthday); v != "" {
			card.SetValue(vcard.FieldBirthday, v)
		}
		if v := deref(contact.Company); v != "" {
			card.SetValue(vcard.FieldOrganization, v)
		}
		if v := deref(contact.PhotoURL); v != "" {
			card.SetValue(vcard.FieldPhoto, v)
		}
		card.SetValue(vcard.FieldVersion, "3.0")
		if err := enc.Encode(card); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
