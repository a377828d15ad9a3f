package service

import (
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
)

type NoteService struct {
	Repo *repository.NoteRepository
}

func NewNoteService(repo *repository.NoteRepository) *NoteService {
	return &NoteService{Repo: repo}
}

type NoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

func (s *NoteService) CreateNote(userID uint, req NoteRequest) (*model.Note, error) {
	note := &model.Note{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
	}
	if err := s.Repo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListNotes(userID uint) ([]model.Note, error) {
	return s.Repo.FindByUserID(userID)
}

func (s *NoteService) GetNote(userID, noteID uint) (*model.Note, error) {
	return s.Repo.FindByIDAndUser(noteID, userID)
}

func (s *NoteService) UpdateNote(userID, noteID uint, req NoteRequest) (*model.Note, error) {
	note, err := s.Repo.FindByIDAndUser(noteID, userID)
	if err != nil {
		return nil, err
	}
	note.Title = req.Title
	note.Content = req.Content
	note.Pinned = req.Pinned
	if err := s.Repo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(userID, noteID uint) error {
	return s.Repo.Delete(noteID, userID)
}
