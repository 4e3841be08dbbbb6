package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a whole source file in memory: header plus data rows. The
// dataset is small enough to hold per upload; the pipeline bounds the
// byte size before reading.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses the raw bytes as CSV or XLSX. The format hint comes
// from the file name / content type; when the hinted format fails the
// other one is tried, the same dance the import service has always
// done for files arriving with the wrong extension.
func ReadTable(data []byte, name, contentType string) (Table, error) {
	format := detectFormat(name, contentType)

	switch format {
	case "xlsx":
		t, err := readXLSX(data)
		if err != nil {
			log.Printf("[INGEST][XLSX][ERR] %v — fallback to CSV", err)
			return readCSV(data)
		}
		return t, nil
	case "csv":
		t, err := readCSV(data)
		if err != nil {
			log.Printf("[INGEST][CSV][ERR] %v — fallback to XLSX", err)
			return readXLSX(data)
		}
		return t, nil
	default:
		t, err := readXLSX(data)
		if err != nil {
			return readCSV(data)
		}
		return t, nil
	}
}

func readCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, err
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, err
		}
		rows = append(rows, record)
	}
	return Table{Header: header, Rows: rows}, nil
}

func readXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("xlsx has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return Table{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Error() != nil {
			return Table{}, rows.Error()
		}
		return Table{}, errors.New("xlsx sheet is empty")
	}
	header, err := rows.Columns()
	if err != nil {
		return Table{}, err
	}

	var out [][]string
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return Table{}, err
		}
		out = append(out, cols)
	}
	if err := rows.Error(); err != nil {
		return Table{}, err
	}
	return Table{Header: header, Rows: out}, nil
}

func detectFormat(filePath, contentType string) string {
	p := filePath
	if u, err := url.Parse(filePath); err == nil && u != nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	switch ext {
	case "xlsx":
		return "xlsx"
	case "csv":
		return "csv"
	}
	med, _, _ := mime.ParseMediaType(contentType)
	switch med {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	case "text/csv", "application/csv", "text/plain":
		return "csv"
	}
	return ""
}
