package services

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/configuration"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/intl"
	"github.com/fkunand/faculty-admin/pkg/serrors"
	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

var (
	ErrEmptyFile     = serrors.NewError("IMPORT_EMPTY_FILE", "file is empty", "Import.Errors.EmptyFile")
	ErrFileTooLarge  = serrors.NewError("IMPORT_FILE_TOO_LARGE", "file exceeds the upload size limit", "Import.Errors.FileTooLarge")
	ErrUnknownTarget = errors.New("unknown import target")
)

// ImportTarget names the dataset an upload is reconciled into.
type ImportTarget string

const (
	TargetLecturer    ImportTarget = "lecturer"
	TargetStaff       ImportTarget = "staff"
	TargetPerformance ImportTarget = "performance"
)

// ParseImportTarget accepts the canonical names, their plurals and the
// Indonesian menu labels.
func ParseImportTarget(s string) (ImportTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lecturer", "lecturers", "dosen":
		return TargetLecturer, nil
	case "staff", "tendik":
		return TargetStaff, nil
	case "performance", "kinerja", "capaian", "capaian-kinerja":
		return TargetPerformance, nil
	}
	return "", errors.Wrapf(ErrUnknownTarget, "%q", s)
}

type ImportRequest struct {
	Target      ImportTarget
	FileName    string
	ContentType string
	Data        []byte
}

// ImportService runs uploaded spreadsheets through the ingestion pipeline
// and reconciles every valid row against the member or indicator store.
type ImportService struct {
	repo      member.Repository
	perfRepo  performance.Repository
	publisher eventbus.EventBus
	table     ingest.AliasTable
	perfTable ingest.AliasTable
	opts      configuration.ImportOptions
	now       func() time.Time
}

func NewImportService(
	repo member.Repository,
	perfRepo performance.Repository,
	publisher eventbus.EventBus,
	table ingest.AliasTable,
	opts configuration.ImportOptions,
) *ImportService {
	if table == nil {
		table = ingest.DefaultAliasTable()
	}
	return &ImportService{
		repo:      repo,
		perfRepo:  perfRepo,
		publisher: publisher,
		table:     table,
		perfTable: ingest.PerformanceAliasTable(),
		opts:      opts,
		now:       time.Now,
	}
}

func (s *ImportService) MaxUploadSize() int64 {
	return s.opts.MaxUploadSize
}

func (s *ImportService) ErrorPreviewLimit() int {
	return s.opts.ErrorPreviewLimit
}

func (s *ImportService) AliasTable() ingest.AliasTable {
	return s.table
}

// Import decodes req and reconciles its rows. Rejections before the first
// row (size, format, missing header) return an error and publish
// ingest.ImportFailedEvent; otherwise the result carries the row errors and
// ingest.ImportedEvent is published.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*ingest.Result, error) {
	start := time.Now()
	switch req.Target {
	case TargetLecturer, TargetStaff, TargetPerformance:
	default:
		return nil, errors.Wrapf(ErrUnknownTarget, "%q", req.Target)
	}

	target := string(req.Target)
	actor := composables.UseActor(ctx)
	fileType := req.ContentType
	if fileType == "" || fileType == "application/octet-stream" {
		fileType = mimetype.Detect(req.Data).String()
	}
	logger := composables.UseLogger(ctx).WithFields(logrus.Fields{
		"kind": target,
		"file": req.FileName,
	})

	reject := func(err error) (*ingest.Result, error) {
		getMetrics().runsTotal.WithLabelValues(target, "rejected").Inc()
		logger.WithError(err).Warn("import rejected")
		s.publisher.Publish(ingest.ImportFailedEvent{
			Actor:    actor,
			Target:   target,
			FileName: req.FileName,
			FileType: fileType,
			Reason:   intl.LocalizeError(nil, err),
			FailedAt: time.Now(),
		})
		return nil, err
	}

	switch {
	case len(req.Data) == 0:
		return reject(ErrEmptyFile)
	case s.opts.MaxUploadSize > 0 && int64(len(req.Data)) > s.opts.MaxUploadSize:
		return reject(ErrFileTooLarge)
	}

	grid, err := spreadsheet.Decode(req.Data, req.FileName)
	if err != nil {
		return reject(err)
	}

	res, err := s.run(ctx, req.Target, grid)
	if err != nil {
		return reject(err)
	}

	m := getMetrics()
	m.rowsTotal.WithLabelValues(target, "inserted").Add(float64(res.Inserted))
	m.rowsTotal.WithLabelValues(target, "updated").Add(float64(res.Updated))
	m.rowsTotal.WithLabelValues(target, "failed").Add(float64(res.Failed))
	status := "completed"
	if res.Succeeded() == 0 {
		status = "failed"
	}
	m.runsTotal.WithLabelValues(target, status).Inc()
	m.duration.WithLabelValues(target).Observe(time.Since(start).Seconds())

	for _, rowErr := range res.Errors {
		logger.WithField("row", rowErr.Row).Debug(rowErr.Error())
	}
	logger.WithFields(logrus.Fields{
		"header_row": res.HeaderRow,
		"columns":    res.Columns,
		"inserted":   res.Inserted,
		"updated":    res.Updated,
		"failed":     res.Failed,
		"took":       time.Since(start).String(),
	}).Info("import finished")

	messages, _ := res.Messages(nil, -1)
	s.publisher.Publish(ingest.ImportedEvent{
		Actor:      actor,
		Target:     target,
		FileName:   req.FileName,
		FileType:   fileType,
		Inserted:   res.Inserted,
		Updated:    res.Updated,
		Failed:     res.Failed,
		Errors:     messages,
		FinishedAt: time.Now(),
	})
	return res, nil
}

func (s *ImportService) run(ctx context.Context, target ImportTarget, grid spreadsheet.Grid) (*ingest.Result, error) {
	order := ingest.DateOrder(s.opts.DateOrder)
	switch target {
	case TargetLecturer:
		profile := ingest.LecturerProfile(s.table, order, s.opts.LecturerScanWindow)
		return ingest.Run(ctx, grid, profile, s.memberSink(member.KindLecturer))
	case TargetStaff:
		profile := ingest.StaffProfile(s.table, order, s.opts.StaffScanWindow)
		return ingest.Run(ctx, grid, profile, s.memberSink(member.KindStaff))
	default:
		profile := ingest.PerformanceProfile(s.perfTable, s.now().Year(), s.opts.PerformanceScanWindow)
		return ingest.Run(ctx, grid, profile, s.performanceSink())
	}
}

func (s *ImportService) memberSink(kind member.Kind) ingest.Sink[ingest.Record] {
	return ingest.SinkFunc[ingest.Record](func(ctx context.Context, rec ingest.Record) (ingest.Outcome, error) {
		entity, err := memberFromRecord(kind, rec)
		if err != nil {
			return 0, err
		}
		_, inserted, err := s.repo.Upsert(ctx, entity)
		if err != nil {
			return 0, err
		}
		if inserted {
			return ingest.OutcomeInserted, nil
		}
		return ingest.OutcomeUpdated, nil
	})
}

func (s *ImportService) performanceSink() ingest.Sink[ingest.PerformanceRecord] {
	return ingest.SinkFunc[ingest.PerformanceRecord](func(ctx context.Context, rec ingest.PerformanceRecord) (ingest.Outcome, error) {
		_, inserted, err := s.perfRepo.Upsert(ctx, indicatorFromRecord(rec))
		if err != nil {
			return 0, err
		}
		if inserted {
			return ingest.OutcomeInserted, nil
		}
		return ingest.OutcomeUpdated, nil
	})
}

func indicatorFromRecord(rec ingest.PerformanceRecord) performance.Indicator {
	status := performance.StatusPending
	if rec.Status != nil {
		status = performance.ParseStatus(*rec.Status)
	}
	return performance.New(performance.Details{
		Year:      rec.Year,
		Quarter:   rec.Quarter,
		Category:  rec.Category,
		Indicator: rec.Indicator,
		Target:    rec.Target,
		Achieved:  rec.Achieved,
		Unit:      rec.Unit,
		Status:    status,
		Notes:     rec.Notes,
	})
}

func memberFromRecord(kind member.Kind, rec ingest.Record) (member.Member, error) {
	birth, err := member.ParseDate(rec.BirthDate)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "birth date")
	}
	retirement, err := member.ParseDate(rec.RetirementDate)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "retirement date")
	}
	return member.New(kind, rec.FullName, member.IdentificationType(rec.IdentificationType), rec.IdentificationNumber, member.Attributes{
		NIP:              rec.NIP,
		NIDN:             rec.NIDN,
		NIDK:             rec.NIDK,
		NUPTK:            rec.NUPTK,
		Gender:           rec.Gender,
		BirthPlace:       rec.BirthPlace,
		BirthDate:        birth,
		RetirementDate:   retirement,
		Email:            rec.Email,
		Phone:            rec.Phone,
		AcademicRank:     rec.AcademicRank,
		Position:         rec.Position,
		Grade:            rec.Grade,
		Department:       rec.Department,
		EmploymentStatus: rec.EmploymentStatus,
		WorkUnit:         rec.WorkUnit,
		Qualification:    rec.Qualification,
		Specialization:   rec.Specialization,
		GraduationYear:   rec.GraduationYear,
		YearsOfService:   rec.YearsOfService,
	}), nil
}
