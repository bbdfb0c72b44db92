package formats

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Esri ASCII grid errors.
var (
	ErrInvalidASCIIHeader  = errors.New("invalid ASCII grid header")
	ErrTruncatedASCIIData  = errors.New("truncated ASCII grid data")
	ErrTrailingASCIIData   = errors.New("trailing data after ASCII grid")
	ErrInvalidASCIIElement = errors.New("invalid ASCII grid value")
)

// maxASCIIGridCells caps nrows*ncols so a corrupt header cannot trigger a huge allocation.
const maxASCIIGridCells = 1 << 30

// ASCIIGridHeader holds the header of an Esri ASCII grid.
type ASCIIGridHeader struct {
	NCols     int
	NRows     int
	XLL       float64
	YLL       float64
	Center    bool // XLL/YLL name the centre of the lower-left cell, not its corner
	DX        float64
	DY        float64
	NoData    float64
	HasNoData bool
}

// ParseASCIIGrid parses an Esri ASCII grid (.asc) from r.
func ParseASCIIGrid(r io.Reader) (*DEM, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	hdr, first, err := parseASCIIHeader(sc)
	if err != nil {
		return nil, err
	}

	z := mat.NewDense(hdr.NRows, hdr.NCols, nil)
	total := hdr.NRows * hdr.NCols

	// The header parser already consumed the first sample.
	tok, ok := first, true
	for n := 0; n < total; n++ {
		if n > 0 {
			if ok = sc.Scan(); !ok {
				break
			}
			tok = sc.Text()
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at sample %d", ErrInvalidASCIIElement, tok, n)
		}
		z.Set(n/hdr.NCols, n%hdr.NCols, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII grid: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: expected %d samples", ErrTruncatedASCIIData, total)
	}
	if sc.Scan() {
		return nil, fmt.Errorf("%w: %q", ErrTrailingASCIIData, sc.Text())
	}

	x, y := hdr.Axes()
	return &DEM{
		X:         x,
		Y:         y,
		Z:         z,
		NoData:    hdr.NoData,
		HasNoData: hdr.HasNoData,
	}, nil
}

// ParseASCIIGridFile parses an ASCII grid from disk. Files ending in .gz are
// decompressed on the fly.
func ParseASCIIGridFile(path string) (*DEM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ASCII grid: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ParseASCIIGrid(r)
}

// Axes returns the cell-centre coordinates of the columns and rows.
// Rows run north to south, so the y axis is descending.
func (h *ASCIIGridHeader) Axes() (x, y []float64) {
	x0, y0 := h.XLL, h.YLL
	if !h.Center {
		x0 += h.DX / 2
		y0 += h.DY / 2
	}

	x = make([]float64, h.NCols)
	for j := range x {
		x[j] = x0 + float64(j)*h.DX
	}
	y = make([]float64, h.NRows)
	for i := range y {
		y[i] = y0 + float64(h.NRows-1-i)*h.DY
	}
	return x, y
}

// parseASCIIHeader reads key/value pairs until the first numeric token,
// which is returned as the first sample.
func parseASCIIHeader(sc *bufio.Scanner) (*ASCIIGridHeader, string, error) {
	hdr := &ASCIIGridHeader{}
	seen := make(map[string]bool)

	for {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, "", fmt.Errorf("reading ASCII grid header: %w", err)
			}
			return nil, "", fmt.Errorf("%w: no samples", ErrTruncatedASCIIData)
		}
		key := strings.ToLower(sc.Text())
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			if err := hdr.validate(seen); err != nil {
				return nil, "", err
			}
			return hdr, sc.Text(), nil
		}

		if !sc.Scan() {
			return nil, "", fmt.Errorf("%w: missing value for %s", ErrInvalidASCIIHeader, key)
		}
		val := sc.Text()
		if err := hdr.set(key, val); err != nil {
			return nil, "", err
		}
		seen[key] = true
	}
}

func (h *ASCIIGridHeader) set(key, val string) error {
	var err error
	switch key {
	case "ncols":
		h.NCols, err = strconv.Atoi(val)
	case "nrows":
		h.NRows, err = strconv.Atoi(val)
	case "xllcorner", "xllcenter":
		h.XLL, err = strconv.ParseFloat(val, 64)
		h.Center = key == "xllcenter"
	case "yllcorner", "yllcenter":
		h.YLL, err = strconv.ParseFloat(val, 64)
	case "cellsize":
		h.DX, err = strconv.ParseFloat(val, 64)
		h.DY = h.DX
	case "dx":
		h.DX, err = strconv.ParseFloat(val, 64)
	case "dy":
		h.DY, err = strconv.ParseFloat(val, 64)
	case "nodata_value":
		h.NoData, err = strconv.ParseFloat(val, 64)
		h.HasNoData = true
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidASCIIHeader, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidASCIIHeader, key, val)
	}
	return nil
}

func (h *ASCIIGridHeader) validate(seen map[string]bool) error {
	for _, key := range []string{"ncols", "nrows"} {
		if !seen[key] {
			return fmt.Errorf("%w: missing %s", ErrInvalidASCIIHeader, key)
		}
	}
	if !seen["xllcorner"] && !seen["xllcenter"] {
		return fmt.Errorf("%w: missing xllcorner/xllcenter", ErrInvalidASCIIHeader)
	}
	if !seen["yllcorner"] && !seen["yllcenter"] {
		return fmt.Errorf("%w: missing yllcorner/yllcenter", ErrInvalidASCIIHeader)
	}
	if seen["xllcenter"] != seen["yllcenter"] {
		return fmt.Errorf("%w: mixed corner and center origin", ErrInvalidASCIIHeader)
	}
	if h.NCols <= 0 || h.NRows <= 0 || h.NCols > maxASCIIGridCells || h.NRows > maxASCIIGridCells ||
		h.NCols*h.NRows > maxASCIIGridCells {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidASCIIHeader, h.NRows, h.NCols)
	}
	if h.DX <= 0 || h.DY <= 0 {
		return fmt.Errorf("%w: cell size %gx%g", ErrInvalidASCIIHeader, h.DX, h.DY)
	}
	return nil
}
