// Package dataio loads feature vectors and labels for training runs.
//
// Two formats are recognised by file extension:
//
//   - .csv: every non-empty field of every record is a number. Records are
//     concatenated in file order, so a single comma-separated line and a
//     one-value-per-line file describe the same vector.
//   - .npy: a NumPy array of float64 (or int32/int64 for labels). 2-D arrays
//     are flattened row-major.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// Format identifies an on-disk encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatNPY Format = "npy"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".npy":
		return FormatNPY, nil
	default:
		return "", errors.NewValidationError("path", "unsupported extension (want .csv or .npy)", path)
	}
}

// ReadFeatures reads a flat feature vector from path.
func ReadFeatures(path string) ([]float64, error) {
	m, err := ReadMatrix(path)
	if err != nil {
		return nil, err
	}
	return flatten(m), nil
}

// ReadMatrix reads path into a matrix. CSV records must all have the same
// number of fields; a 1-D .npy array becomes a single column.
func ReadMatrix(path string) (*mat.Dense, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var m *mat.Dense
	switch format {
	case FormatNPY:
		m, err = readNpy(f)
	default:
		m, err = readCSV(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return m, nil
}

func readCSV(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var data []float64
	rows, cols := 0, -1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		n := 0
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				line, _ := cr.FieldPos(0)
				return nil, errors.NewValidationError(fmt.Sprintf("line %d", line), "field is not a number", field)
			}
			data = append(data, v)
			n++
		}
		if n == 0 {
			continue
		}
		rows++
		if cols < 0 {
			cols = n
		} else if cols != n {
			cols = 0
		}
	}

	if len(data) == 0 {
		return nil, errors.ErrEmptyData
	}
	if cols <= 0 {
		// ragged records: a single row in file order
		return mat.NewDense(1, len(data), data), nil
	}
	return mat.NewDense(rows, cols, data), nil
}

func readNpy(r io.Reader) (*mat.Dense, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	shape := nr.Header.Descr.Shape
	var data []float64
	switch nr.Header.Descr.Type {
	case "<f8", "f8":
		if err := nr.Read(&data); err != nil {
			return nil, errors.WithStack(err)
		}
	case "<i8", "i8":
		var raw []int64
		if err := nr.Read(&raw); err != nil {
			return nil, errors.WithStack(err)
		}
		data = make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
	case "<i4", "i4":
		var raw []int32
		if err := nr.Read(&raw); err != nil {
			return nil, errors.WithStack(err)
		}
		data = make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}
	default:
		return nil, errors.NewValidationError("dtype", "unsupported .npy dtype (want <f8, <i8 or <i4)", nr.Header.Descr.Type)
	}
	if len(data) == 0 {
		return nil, errors.ErrEmptyData
	}

	switch len(shape) {
	case 0, 1:
		return mat.NewDense(len(data), 1, data), nil
	case 2:
		rows, cols := shape[0], shape[1]
		if !nr.Header.Descr.Fortran {
			return mat.NewDense(rows, cols, data), nil
		}
		// column-major: build the transpose and copy it back row-major
		var m mat.Dense
		m.CloneFrom(mat.NewDense(cols, rows, data).T())
		return &m, nil
	default:
		return nil, errors.NewValidationError("shape", "array must be 1-D or 2-D", shape)
	}
}

func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.RawRowView(i)...)
	}
	return out
}

// ReadLabels reads a label vector and checks that every entry is -1 or +1.
func ReadLabels(path string) ([]model.Label, error) {
	values, err := ReadFeatures(path)
	if err != nil {
		return nil, err
	}
	labels := make([]model.Label, len(values))
	for i, v := range values {
		l := model.Label(int(v))
		if v != math.Trunc(v) || !l.Valid() {
			return nil, errors.NewValidationError(fmt.Sprintf("%s[%d]", filepath.Base(path), i), "label must be -1 or +1", v)
		}
		labels[i] = l
	}
	return labels, nil
}

// WindowLabels labels the indices from..to (inclusive) +1 and every other
// index of 0..n-1 as -1.
func WindowLabels(n, from, to int) []model.Label {
	labels := make([]model.Label, n)
	for i := range labels {
		if i >= from && i <= to {
			labels[i] = model.Positive
		} else {
			labels[i] = model.Negative
		}
	}
	return labels
}

// WriteLabels writes labels to path as a 1-D int64 .npy array or as one
// comma-separated CSV line, depending on the extension.
func WriteLabels(path string, labels []model.Label) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	switch format {
	case FormatNPY:
		raw := make([]int64, len(labels))
		for i, l := range labels {
			raw[i] = int64(l)
		}
		return errors.WithStack(npyio.Write(f, raw))
	default:
		record := make([]string, len(labels))
		for i, l := range labels {
			record[i] = strconv.Itoa(int(l))
		}
		w := csv.NewWriter(f)
		if err := w.Write(record); err != nil {
			return errors.WithStack(err)
		}
		w.Flush()
		return errors.WithStack(w.Error())
	}
}
