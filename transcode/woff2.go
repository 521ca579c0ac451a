// Package transcode re-encodes TrueType fonts into WOFF2 containers.
package transcode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/andybalholm/brotli"
)

const (
	signatureWOFF2 = 0x774F4632 // "wOF2"

	sfntHeaderLen   = 12
	sfntTableRecLen = 16
	woff2HeaderLen  = 48

	// flags byte: low 6 bits are known tag index, high 2 bits transformation
	explicitTag  = 63
	nullGlyfLoca = 3 << 6

	brotliWindow = 22

	// offset of flags field in head table and bit 11 of it ("font data has
	// been lossless converted") in its high byte
	headFlagsOffset    = 16
	headFlagsConverted = 0x08

	flavorTrueType   = 0x00010000
	flavorAppleTrue  = 0x74727565 // "true"
	flavorOpenTypeCF = 0x4F54544F // "OTTO"
)

// knownTags is ordered table of tags which could be encoded in a single
// byte of table directory entry.
var knownTags = [...]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

type woff2Header struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

type sfntTable struct {
	tag  string
	data []byte
}

// ToWOFF2 converts single font SFNT (TrueType or OpenType) binary to WOFF2.
// Only table directory is checked. Tables are stored without glyf/loca
// transformation, after decoding font data is identical to the input except
// head flags which are marked as converted.
func ToWOFF2(data []byte) ([]byte, error) {
	flavor, tables, err := readTables(data)
	if err != nil {
		return nil, err
	}

	var stream bytes.Buffer
	bw := brotli.NewWriterOptions(&stream, brotli.WriterOptions{Quality: brotli.BestCompression, LGWin: brotliWindow})
	directory := bytes.Buffer{}
	totalSfntSize := uint32(sfntHeaderLen + sfntTableRecLen*len(tables))

	for _, t := range tables {
		if idx := slices.Index(knownTags[:], t.tag); idx >= 0 {
			flags := byte(idx)
			if t.tag == "glyf" || t.tag == "loca" {
				flags |= nullGlyfLoca
			}
			directory.WriteByte(flags)
		} else {
			directory.WriteByte(explicitTag)
			directory.WriteString(t.tag)
		}
		directory.Write(appendUintBase128(nil, uint32(len(t.data))))

		if t.tag == "head" {
			t.data = markConverted(t.data)
		}
		if _, err := bw.Write(t.data); err != nil {
			return nil, fmt.Errorf("unable to compress table %q: %w", t.tag, err)
		}
		totalSfntSize += uint32(pad4(len(t.data)))
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("unable to compress font data: %w", err)
	}

	hdr := woff2Header{
		Signature:           signatureWOFF2,
		Flavor:              flavor,
		NumTables:           uint16(len(tables)),
		TotalSfntSize:       totalSfntSize,
		TotalCompressedSize: uint32(stream.Len()),
		MajorVersion:        1,
	}
	hdr.Length = uint32(pad4(woff2HeaderLen + directory.Len() + stream.Len()))

	out := bytes.NewBuffer(make([]byte, 0, hdr.Length))
	if err := binary.Write(out, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("unable to write header: %w", err)
	}
	out.Write(directory.Bytes())
	out.Write(stream.Bytes())
	for out.Len() < int(hdr.Length) {
		out.WriteByte(0)
	}
	return out.Bytes(), nil
}

// readTables returns sfnt flavor and font tables sorted by tag.
func readTables(data []byte) (uint32, []sfntTable, error) {
	if len(data) < sfntHeaderLen {
		return 0, nil, errors.New("font is too short")
	}
	flavor := binary.BigEndian.Uint32(data[0:4])
	switch flavor {
	case flavorTrueType, flavorAppleTrue, flavorOpenTypeCF:
	default:
		return 0, nil, fmt.Errorf("unsupported sfnt flavor %#08x", flavor)
	}
	num := int(binary.BigEndian.Uint16(data[4:6]))
	if num == 0 {
		return 0, nil, errors.New("font has no tables")
	}
	if len(data) < sfntHeaderLen+num*sfntTableRecLen {
		return 0, nil, fmt.Errorf("table directory for %d tables is truncated", num)
	}

	tables := make([]sfntTable, 0, num)
	for i := range num {
		rec := data[sfntHeaderLen+i*sfntTableRecLen:]
		tag := string(rec[0:4])
		offset := uint64(binary.BigEndian.Uint32(rec[8:12]))
		length := uint64(binary.BigEndian.Uint32(rec[12:16]))
		if offset+length > uint64(len(data)) {
			return 0, nil, fmt.Errorf("table %q is out of bounds", tag)
		}
		if slices.ContainsFunc(tables, func(t sfntTable) bool { return t.tag == tag }) {
			return 0, nil, fmt.Errorf("duplicate table %q", tag)
		}
		tables = append(tables, sfntTable{tag: tag, data: data[offset : offset+length]})
	}
	if !slices.ContainsFunc(tables, func(t sfntTable) bool {
		return t.tag == "head" && len(t.data) > headFlagsOffset+1
	}) {
		return 0, nil, errors.New("font has no valid head table")
	}
	slices.SortFunc(tables, func(a, b sfntTable) int {
		return bytes.Compare([]byte(a.tag), []byte(b.tag))
	})
	return flavor, tables, nil
}

// markConverted returns copy of head table with bit 11 of flags set, WOFF2
// decoders refuse fonts without it.
func markConverted(head []byte) []byte {
	head = bytes.Clone(head)
	head[headFlagsOffset] |= headFlagsConverted
	return head
}

// appendUintBase128 encodes v as big-endian base 128 number, high bit set on
// every byte but the last one.
func appendUintBase128(dst []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

func pad4(n int) int {
	return (n + 3) &^ 3
}
