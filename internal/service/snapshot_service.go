package service

import (
	"canvas_calendar_backend/internal/model"
	"canvas_calendar_backend/internal/repository"
)

// SnapshotService 把最近一次成功刷新的记录集整体落库，只保留最新一份
type SnapshotService struct {
	Repo *repository.RecordRepository
}

func NewSnapshotService(repo *repository.RecordRepository) *SnapshotService {
	return &SnapshotService{Repo: repo}
}

func (s *SnapshotService) Save(refreshID string, records []model.Record) error {
	return s.Repo.ReplaceAll(model.RowsFromRecords(refreshID, records))
}

// LoadLatest 返回最近快照。没有快照或版本不匹配时返回空刷新 ID，
// 旧版本快照直接丢弃，等下一次刷新重建。
func (s *SnapshotService) LoadLatest() (string, []model.Record, error) {
	rows, err := s.Repo.Latest()
	if err != nil {
		return "", nil, err
	}
	if len(rows) == 0 || rows[0].SchemaVersion != model.SnapshotSchemaVersion {
		return "", nil, nil
	}
	return rows[0].RefreshID, model.RecordsFromRows(rows), nil
}
