package handlers

import (
	"net/http"

	"reelpress/internal/apperr"
	"reelpress/internal/mail"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type bookingRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Details   string `json:"details"`
}

// Contact accepts a contact form submission and mails it to the studio
// inbox. The JSON envelope matches the admin API so the front-end can
// share its form handling.
func Contact(mailer mail.Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mailer == nil {
			respondErr(w, apperr.Validation("the contact form is temporarily unavailable"))
			return
		}

		var req contactRequest
		if err := decodeJSON(r, &req); err != nil {
			respondErr(w, err)
			return
		}

		if err := requireString("name", req.Name, maxNameLen); err != nil {
			respondErr(w, err)
			return
		}
		if !validEmail(req.Email) {
			respondErr(w, apperr.Validation("email is not a valid address"))
			return
		}
		if err := requireString("message", req.Message, maxMessageLen); err != nil {
			respondErr(w, err)
			return
		}

		err := mailer.SendContact(mail.ContactEnquiry{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		})
		if err != nil {
			respondErr(w, apperr.Upstream("sending enquiry", err))
			return
		}

		respondOK(w, nil)
	}
}

// Booking accepts an event booking enquiry from the event page.
func Booking(mailer mail.Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mailer == nil {
			respondErr(w, apperr.Validation("the booking form is temporarily unavailable"))
			return
		}

		var req bookingRequest
		if err := decodeJSON(r, &req); err != nil {
			respondErr(w, err)
			return
		}

		if err := requireString("name", req.Name, maxNameLen); err != nil {
			respondErr(w, err)
			return
		}
		if !validEmail(req.Email) {
			respondErr(w, apperr.Validation("email is not a valid address"))
			return
		}
		if err := requireString("details", req.Details, maxMessageLen); err != nil {
			respondErr(w, err)
			return
		}

		err := mailer.SendBooking(mail.BookingEnquiry{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			EventType: req.EventType,
			EventDate: req.EventDate,
			Details:   req.Details,
		})
		if err != nil {
			respondErr(w, apperr.Upstream("sending enquiry", err))
			return
		}

		respondOK(w, nil)
	}
}
