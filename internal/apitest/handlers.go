package apitest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/flock-console/internal/models"
)

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.Email != Email || req.Password != Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}
	s.mu.Lock()
	token := s.issueLocked()
	s.mu.Unlock()
	c.JSON(http.StatusOK, models.AuthResponse{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		TokenType:    "bearer",
		User:         models.UserInfo{ID: 1, Email: Email, Username: "shepherd"},
	})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "email and password required"})
		return
	}
	if req.Email == Email {
		c.JSON(http.StatusConflict, gin.H{"detail": "Email already registered"})
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) logout(c *gin.Context) {
	s.mu.Lock()
	delete(s.tokens, c.GetString("token"))
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) refresh(c *gin.Context) {
	s.mu.Lock()
	delete(s.tokens, c.GetString("token"))
	token := s.issueLocked()
	s.mu.Unlock()
	c.JSON(http.StatusOK, models.AuthResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, models.UserInfo{ID: 1, Email: Email, Username: "shepherd"})
}

func (s *Server) requestReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.Email == Email {
		s.mu.Lock()
		s.resetTokens[uuid.NewString()] = req.Email
		s.mu.Unlock()
	}
	// Same answer whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"message": "If an account exists, instructions were sent"})
}

func (s *Server) confirmReset(c *gin.Context) {
	var req models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	_, ok := s.resetTokens[req.Token]
	delete(s.resetTokens, req.Token)
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (s *Server) listSheep(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sheep, 0, len(s.sheep))
	for _, sheep := range s.sheep {
		if status := c.Query("status"); status != "" && string(sheep.Status) != status {
			continue
		}
		if sex := c.Query("sex"); sex != "" && string(sheep.Sex) != sex {
			continue
		}
		if breed := c.Query("breed"); breed != "" && !strings.EqualFold(sheep.Breed, breed) {
			continue
		}
		out = append(out, sheep)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) availableSheep(sex models.SheepSex) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]models.Sheep, 0)
		for _, sheep := range s.sheep {
			if sheep.Sex == sex && sheep.Status == models.SheepActive {
				out = append(out, sheep)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) createSheep(c *gin.Context) {
	var req models.CreateSheepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	for _, existing := range s.sheep {
		if existing.TagID == req.TagID {
			s.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"detail": "Tag ID already registered"})
			return
		}
	}
	s.mu.Unlock()
	created := s.AddSheep(models.Sheep{
		TagID:            req.TagID,
		ScrapieID:        req.ScrapieID,
		Breed:            req.Breed,
		Sex:              req.Sex,
		DateOfBirth:      req.DateOfBirth,
		PurchaseDate:     req.PurchaseDate,
		AcquisitionPrice: req.AcquisitionPrice,
		OriginFarm:       req.OriginFarm,
		RFIDCode:         req.RFIDCode,
		QRCode:           req.QRCode,
		Notes:            req.Notes,
		Status:           req.Status,
		CurrentSection:   req.CurrentSection,
		SireID:           req.SireID,
		DamID:            req.DamID,
	})
	c.JSON(http.StatusOK, created)
}

func (s *Server) getSheep(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sheep := range s.sheep {
		if sheep.ID == id {
			c.JSON(http.StatusOK, sheep)
			return
		}
	}
	notFound(c, "Sheep")
}

func (s *Server) updateSheep(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateSheepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sheep {
		if s.sheep[i].ID != id {
			continue
		}
		sheep := &s.sheep[i]
		if req.ScrapieID != nil {
			sheep.ScrapieID = *req.ScrapieID
		}
		if req.Breed != nil {
			sheep.Breed = *req.Breed
		}
		if req.Status != nil {
			sheep.Status = *req.Status
		}
		if req.CurrentSection != nil {
			sheep.CurrentSection = *req.CurrentSection
		}
		if req.Notes != nil {
			sheep.Notes = *req.Notes
		}
		if req.SaleDate != nil {
			sheep.SaleDate = req.SaleDate
		}
		if req.SalePrice != nil {
			sheep.SalePrice = req.SalePrice
		}
		if req.DeathDate != nil {
			sheep.DeathDate = req.DeathDate
		}
		c.JSON(http.StatusOK, *sheep)
		return
	}
	notFound(c, "Sheep")
}

func (s *Server) deleteSheep(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sheep := range s.sheep {
		if sheep.ID == id {
			s.sheep = append(s.sheep[:i], s.sheep[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Sheep deleted"})
			return
		}
	}
	notFound(c, "Sheep")
}

func (s *Server) listHealth(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := models.Date{Time: timeToday()}
	out := make([]models.HealthEvent, 0, len(s.events))
	for _, event := range s.events {
		if sheepID := c.Query("sheep_id"); sheepID != "" && event.SheepID != sheepID {
			continue
		}
		if eventType := c.Query("event_type"); eventType != "" && string(event.EventType) != eventType {
			continue
		}
		if start := c.Query("start_date"); start != "" && event.EventDate.String() < start {
			continue
		}
		if end := c.Query("end_date"); end != "" && event.EventDate.String() > end {
			continue
		}
		if c.Query("overdue") == "true" && !event.Overdue(today) {
			continue
		}
		out = append(out, event)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) overdueHealth(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := models.Date{Time: timeToday()}
	out := make([]models.HealthEvent, 0)
	for _, event := range s.events {
		if event.Overdue(today) {
			out = append(out, event)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createHealth(c *gin.Context) {
	var req models.CreateHealthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	created := s.AddHealthEvent(models.HealthEvent{
		SheepID:     req.SheepID,
		EventDate:   req.EventDate,
		EventType:   req.EventType,
		Details:     req.Details,
		NextDueDate: req.NextDueDate,
		Attachments: req.Attachments,
	})
	c.JSON(http.StatusOK, created)
}

func (s *Server) getHealth(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range s.events {
		if event.ID == id {
			c.JSON(http.StatusOK, event)
			return
		}
	}
	notFound(c, "Health event")
}

func (s *Server) updateHealth(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.UpdateHealthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID != id {
			continue
		}
		event := &s.events[i]
		if req.EventDate != nil {
			event.EventDate = *req.EventDate
		}
		if req.EventType != nil {
			event.EventType = *req.EventType
		}
		if req.Details != nil {
			event.Details = *req.Details
		}
		if req.NextDueDate != nil {
			event.NextDueDate = req.NextDueDate
		}
		if req.Attachments != nil {
			event.Attachments = req.Attachments
		}
		c.JSON(http.StatusOK, *event)
		return
	}
	notFound(c, "Health event")
}

func (s *Server) deleteHealth(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, event := range s.events {
		if event.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Health event deleted"})
			return
		}
	}
	notFound(c, "Health event")
}

func (s *Server) listPairs(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MatingPair, 0, len(s.pairs))
	for _, pair := range s.pairs {
		out = append(out, s.expandLocked(pair))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createPair(c *gin.Context) {
	var req models.MatingPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.RamID == req.EweID {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Ram and ewe must differ"})
		return
	}
	created := s.AddMatingPair(models.MatingPair{
		RamID:     req.RamID,
		EweID:     req.EweID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	c.JSON(http.StatusOK, created)
}

func (s *Server) getPair(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pair := range s.pairs {
		if pair.ID == id {
			c.JSON(http.StatusOK, s.expandLocked(pair))
			return
		}
	}
	notFound(c, "Mating pair")
}

func (s *Server) updatePair(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.MatingPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pairs {
		if s.pairs[i].ID != id {
			continue
		}
		s.pairs[i] = models.MatingPair{
			ID:        id,
			RamID:     req.RamID,
			EweID:     req.EweID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Status:    req.Status,
			Notes:     req.Notes,
		}
		c.JSON(http.StatusOK, s.expandLocked(s.pairs[i]))
		return
	}
	notFound(c, "Mating pair")
}

func (s *Server) deletePair(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pair := range s.pairs {
		if pair.ID == id {
			s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	notFound(c, "Mating pair")
}
