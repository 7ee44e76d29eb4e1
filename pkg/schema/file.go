package schema

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/fixedwire/pkg/codec"
)

// fileRecord is the YAML document shape for a dynamically described record:
//
//	name: Packet
//	fields:
//	  - name: id
//	    type: uint32
//	  - name: tag
//	    type: string
//	    size: 6
//	  - name: samples
//	    type: array
//	    len: 10
//	    of: {type: uint8}
//	  - name: header
//	    type: record
//	    fields: [...]
type fileRecord struct {
	Name   string      `yaml:"name"`
	Fields []fileField `yaml:"fields"`
}

type fileField struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Size   int         `yaml:"size,omitempty"`
	Len    int         `yaml:"len,omitempty"`
	Order  string      `yaml:"order,omitempty"`
	Of     *fileField  `yaml:"of,omitempty"`
	Fields []fileField `yaml:"fields,omitempty"`
}

// LoadFile reads a YAML schema document and builds a map-backed record
// descriptor from it.
func LoadFile(path string) (*codec.Record, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("schema: invalid path: %w", err)
		}
		path = abs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read file: %w", err)
	}
	return Parse(data)
}

// Parse builds a map-backed record descriptor from YAML schema bytes.
func Parse(data []byte) (*codec.Record, error) {
	var fr fileRecord
	if err := yaml.Unmarshal(data, &fr); err != nil {
		return nil, fmt.Errorf("schema: parse file: %w", err)
	}
	if fr.Name == "" {
		return nil, fmt.Errorf("schema: document needs a record name")
	}
	if len(fr.Fields) == 0 {
		return nil, fmt.Errorf("schema: record %q has no fields", fr.Name)
	}
	return buildFileRecord(fr)
}

func buildFileRecord(fr fileRecord) (*codec.Record, error) {
	fields := make([]codec.Field, 0, len(fr.Fields))
	for _, f := range fr.Fields {
		ft, err := buildFileType(f)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q of %q: %w", f.Name, fr.Name, err)
		}
		fields = append(fields, codec.Field{Name: f.Name, Type: ft})
	}
	return codec.NewRecord(codec.RecordConfig{Name: fr.Name, Fields: fields})
}

func buildFileType(f fileField) (codec.Codec, error) {
	order, err := orderFor(f.Order)
	if err != nil {
		return nil, err
	}

	switch f.Type {
	case "bool":
		return codec.NewBool(), nil
	case "char":
		return codec.NewChar(), nil
	case "uint8":
		return codec.NewUint8(order), nil
	case "int8":
		return codec.NewInt8(order), nil
	case "uint16":
		return codec.NewUint16(order), nil
	case "int16":
		return codec.NewInt16(order), nil
	case "uint32":
		return codec.NewUint32(order), nil
	case "int32":
		return codec.NewInt32(order), nil
	case "uint64":
		return codec.NewUint64(order), nil
	case "int64":
		return codec.NewInt64(order), nil
	case "string":
		if f.Size <= 0 {
			return nil, fmt.Errorf("string needs a positive size")
		}
		return codec.NewText(f.Size), nil
	case "array":
		if f.Len <= 0 {
			return nil, fmt.Errorf("array needs a positive len")
		}
		if f.Of == nil {
			return nil, fmt.Errorf("array needs an element type under of:")
		}
		elem, err := buildFileType(*f.Of)
		if err != nil {
			return nil, err
		}
		return codec.NewArray(elem, f.Len)
	case "record":
		if len(f.Fields) == 0 {
			return nil, fmt.Errorf("record needs nested fields")
		}
		return buildFileRecord(fileRecord{Name: f.Name, Fields: f.Fields})
	case "":
		return nil, fmt.Errorf("missing type")
	}
	return nil, fmt.Errorf("unknown type %q", f.Type)
}

func orderFor(name string) (binary.ByteOrder, error) {
	switch name {
	case "", "le", "little":
		return binary.LittleEndian, nil
	case "be", "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", name)
}
