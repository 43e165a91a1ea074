package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/model"

	"github.com/google/uuid"
)

// DocumentPipeline renders and archives the entry/exit record for a
// session (PDF plus mail in the full deployment). It is a best-effort
// collaborator: the state transition it documents is already
// committed, so failures are logged and never propagated back.
type DocumentPipeline interface {
	GenerateEntryRecord(ctx context.Context, session *model.ZoneSession) (*model.Document, error)
	GenerateExitRecord(ctx context.Context, session *model.ZoneSession) (*model.Document, error)
}

// ArchiveOnlyPipeline stores the archive row and leaves rendering and
// delivery to the external document service; FileRef carries the
// storage path the renderer will write to.
type ArchiveOnlyPipeline struct {
	Documents DocumentStore
}

func NewArchiveOnlyPipeline(documents DocumentStore) *ArchiveOnlyPipeline {
	return &ArchiveOnlyPipeline{Documents: documents}
}

func (p *ArchiveOnlyPipeline) GenerateEntryRecord(ctx context.Context, session *model.ZoneSession) (*model.Document, error) {
	return p.archive(ctx, session, model.DocumentEntry)
}

func (p *ArchiveOnlyPipeline) GenerateExitRecord(ctx context.Context, session *model.ZoneSession) (*model.Document, error) {
	return p.archive(ctx, session, model.DocumentExit)
}

func (p *ArchiveOnlyPipeline) archive(ctx context.Context, session *model.ZoneSession, kind string) (*model.Document, error) {
	now := time.Now()
	doc := &model.Document{
		DocumentID:  uuid.New().String(),
		UserID:      session.SubjectID,
		SessionID:   session.SessionID,
		Kind:        kind,
		FileRef:     documentPath(session, kind, now),
		Description: fmt.Sprintf("zone session %s record", session.SessionID),
		CreatedAt:   now,
	}

	if err := p.Documents.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to archive %s record: %w", kind, err)
	}

	log.Printf("archived %s record %s for session %s", kind, doc.DocumentID, session.SessionID)
	return doc, nil
}

// documentPath partitions the archive by year/month so no directory
// accumulates millions of files.
func documentPath(session *model.ZoneSession, kind string, now time.Time) string {
	return fmt.Sprintf("documents/user_%s/%s/%d/%d/%s.pdf",
		session.SubjectID, kind, now.Year(), int(now.Month()), uuid.New().String())
}
