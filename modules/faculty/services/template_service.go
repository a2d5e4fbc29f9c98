package services

import (
	"bytes"
	_ "embed"

	"github.com/go-faster/errors"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

//go:embed templates/staff_duk.csv
var staffTemplate []byte

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

type Template struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TemplateService produces the downloadable upload templates. Each is
// accepted by the import pipeline as-is.
type TemplateService struct{}

func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

func (s *TemplateService) Template(target ImportTarget) (*Template, error) {
	switch target {
	case TargetLecturer:
		return lecturerTemplate()
	case TargetStaff:
		return &Template{
			FileName:    "Template_Data_Tendik.csv",
			ContentType: csvContentType,
			Data:        staffTemplate,
		}, nil
	case TargetPerformance:
		return performanceTemplate()
	}
	return nil, errors.Wrapf(ErrUnknownTarget, "%q", target)
}

func lecturerTemplate() (*Template, error) {
	sheet := spreadsheet.WorkbookSheet{
		Name: "Template Dosen",
		Headers: []string{
			"Nama", "NIDN", "NIDK", "Email", "Telepon", "Departemen",
			"Jabatan Akademik", "Posisi Fakultas", "Kualifikasi", "Spesialisasi",
		},
		Rows: [][]any{
			{"Dr. Budi Santoso", "0001056301", "", "budi@unand.ac.id", "08123456789", "Anatomi",
				"Prof. Dr.", "Ketua Departemen", "S3", "Anatomi Klinis"},
			{"Dr. Siti Nurhaliza", "", "0002078402", "siti@unand.ac.id", "08198765432", "Fisiologi",
				"Dr.", "Dosen Tetap", "S3", "Fisiologi Manusia"},
		},
		Widths: []float64{25, 15, 15, 25, 15, 20, 18, 18, 15, 25},
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteWorkbook(&buf, sheet); err != nil {
		return nil, errors.Wrap(err, "build lecturer template")
	}
	return &Template{
		FileName:    "Template_Data_Dosen.xlsx",
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func performanceTemplate() (*Template, error) {
	sheet := spreadsheet.WorkbookSheet{
		Name: "Capaian Kinerja",
		Headers: []string{
			"Tahun", "Kuartal", "Kategori", "Indikator", "Target",
			"Capaian", "Satuan", "Status", "Catatan",
		},
		Rows: [][]any{
			{2024, 1, "Pendidikan", "Jumlah Lulusan Tepat Waktu", 85, 80, "%", "on_track", ""},
			{2024, 1, "Penelitian", "Publikasi Internasional", 50, 45, "artikel", "on_track", "Termasuk prosiding"},
		},
		Widths: []float64{10, 10, 25, 35, 10, 10, 10, 15, 30},
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteWorkbook(&buf, sheet); err != nil {
		return nil, errors.Wrap(err, "build performance template")
	}
	return &Template{
		FileName:    "Template_Capaian_Kinerja.xlsx",
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}
