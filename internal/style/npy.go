package style

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var npyMagic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

// shapeRE pulls the shape tuple out of a NPY header dict string, e.g.
// "{'descr': '<f4', 'fortran_order': False, 'shape': (511, 1, 256), }".
var shapeRE = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
var descrRE = regexp.MustCompile(`'descr':\s*'([^']*)'`)

// array is a decoded NPY float32 array: flat row-major data plus its shape.
type array struct {
	shape []int
	data  []float32
}

// readNPY parses a single .npy stream per the NPY v1.0/v2.0 format: an
// 8-byte magic+version prefix, a little-endian header-length field, a
// Python-literal header dict, and a raw little-endian float32 payload. Only
// '<f4' (little-endian float32) arrays are supported, matching the style
// archive's contents.
func readNPY(r io.Reader) (*array, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 6)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read npy magic: %w", err)
	}
	for i, b := range npyMagic {
		if magic[i] != b {
			return nil, fmt.Errorf("not a npy file: bad magic")
		}
	}

	var major, minor uint8
	if err := binary.Read(br, binary.LittleEndian, &major); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.LittleEndian, &minor); err != nil {
		return nil, err
	}

	var headerLen uint32
	if major == 1 {
		var hl16 uint16
		if err := binary.Read(br, binary.LittleEndian, &hl16); err != nil {
			return nil, err
		}
		headerLen = uint32(hl16)
	} else {
		if err := binary.Read(br, binary.LittleEndian, &headerLen); err != nil {
			return nil, err
		}
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(br, headerBytes); err != nil {
		return nil, fmt.Errorf("read npy header: %w", err)
	}
	header := string(headerBytes)

	descrMatch := descrRE.FindStringSubmatch(header)
	if descrMatch == nil {
		return nil, fmt.Errorf("npy header missing descr field")
	}
	if descrMatch[1] != "<f4" {
		return nil, fmt.Errorf("unsupported npy dtype %q, only <f4 is supported", descrMatch[1])
	}

	shapeMatch := shapeRE.FindStringSubmatch(header)
	if shapeMatch == nil {
		return nil, fmt.Errorf("npy header missing shape field")
	}
	shape, err := parseShape(shapeMatch[1])
	if err != nil {
		return nil, fmt.Errorf("npy shape: %w", err)
	}

	count := 1
	for _, d := range shape {
		count *= d
	}

	data := make([]float32, count)
	if err := binary.Read(br, binary.LittleEndian, &data); err != nil {
		return nil, fmt.Errorf("read npy payload: %w", err)
	}

	return &array{shape: shape, data: data}, nil
}

func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad shape component %q: %w", p, err)
		}
		shape = append(shape, n)
	}
	return shape, nil
}
