// Package moduleloader implements Kush's `.am` binary artifact loader
// (component I, spec §4.7): a big-endian header format describing the
// structures and functions a previously-compiled module exports,
// consulted by the analyzer when resolving an `import` descriptor.
package moduleloader

import (
	"encoding/binary"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	kusherrors "github.com/kush-lang/kushc/compiler/errors"
)

const (
	magic        uint32 = 0x4B555348 // "KUSH"
	supportedMajor uint16 = 1
)

// errVersionReported marks a parseFile failure that already reported
// its own InvalidFEBVersion diagnostic, so Load doesn't also report a
// redundant CorruptedBinaryEntity for the same failure.
var errVersionReported = stderrors.New("unsupported module artifact version")

// Symbol is one exported entry of a loaded module: a structure or
// function descriptor by name, with enough shape information for the
// analyzer to treat it as an externally-aliased symbol.
type Symbol struct {
	Name          string
	IsFunction    bool
	ParameterTypes []string
	ReturnType    string
	MemberNames   []string
	MemberTypes   []string
}

// Module is the parsed contents of one `.am` artifact.
type Module struct {
	Descriptor string
	Major      uint16
	Minor      uint16
	Structures []Symbol
	Functions  []Symbol
}

// Loader caches loaded modules by descriptor. Per spec §5 the cache is
// write-once per key and concurrent Load calls are not supported —
// this is a bare map, not a sync.Map, matching that stated invariant
// rather than defensively guarding a concurrency model the spec rules
// out.
type Loader struct {
	directories []string
	cache       map[string]*Module
	handler     *kusherrors.Handler
}

// New builds a Loader that searches directories, in order, for a
// `<descriptor>.am` file.
func New(directories []string, handler *kusherrors.Handler) *Loader {
	return &Loader{directories: directories, cache: make(map[string]*Module), handler: handler}
}

// Load resolves descriptor (e.g. "kush.core") to its Module, trying the
// cache first. A missing file is not an error — it simply means the
// import will be reported as UnknownModule by the caller, matching
// original_source/include/kush/module-loader.h's "fails silently"
// contract; a found-but-malformed file reports CorruptedBinaryEntity or
// InvalidFEBVersion and returns nil.
func (l *Loader) Load(descriptor string) *Module {
	if mod, ok := l.cache[descriptor]; ok {
		return mod
	}
	path := l.resolve(descriptor)
	if path == "" {
		return nil
	}
	mod, err := l.parseFile(path, descriptor)
	if err != nil {
		if !stderrors.Is(err, errVersionReported) {
			l.handler.ReportGeneral(kusherrors.CorruptedBinaryEntity, errors.ErrorStack(err))
		}
		return nil
	}
	l.cache[descriptor] = mod
	return mod
}

func (l *Loader) resolve(descriptor string) string {
	rel := strings.ReplaceAll(descriptor, ".", string(filepath.Separator)) + ".am"
	for _, dir := range l.directories {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// parseFile reads the `.am` header. Layout (all big-endian, spec §4.7):
//
//	uint32 magic
//	uint16 major
//	uint16 minor
//	uint32 structureCount
//	uint32 functionCount
//	... structureCount structure descriptors
//	... functionCount function descriptors
func (l *Loader) parseFile(path, descriptor string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening module artifact %q", path)
	}
	defer f.Close()

	var header struct {
		Magic          uint32
		Major          uint16
		Minor          uint16
		StructureCount uint32
		FunctionCount  uint32
	}
	if err := binary.Read(f, binary.BigEndian, &header); err != nil {
		return nil, errors.Annotatef(err, "reading module header %q", path)
	}
	if header.Magic != magic {
		return nil, errors.Errorf("%q is not a kush module artifact", path)
	}
	if header.Major != supportedMajor {
		l.handler.ReportGeneral(kusherrors.InvalidFEBVersion, path)
		return nil, errVersionReported
	}

	mod := &Module{Descriptor: descriptor, Major: header.Major, Minor: header.Minor}
	for i := uint32(0); i < header.StructureCount; i++ {
		sym, err := readStructureSymbol(f)
		if err != nil {
			return nil, errors.Annotatef(err, "reading structure descriptor %d of %q", i, path)
		}
		mod.Structures = append(mod.Structures, sym)
	}
	for i := uint32(0); i < header.FunctionCount; i++ {
		sym, err := readFunctionSymbol(f)
		if err != nil {
			return nil, errors.Annotatef(err, "reading function descriptor %d of %q", i, path)
		}
		mod.Functions = append(mod.Functions, sym)
	}
	return mod, nil
}

func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readStructureSymbol(r io.Reader) (Symbol, error) {
	name, err := readString(r)
	if err != nil {
		return Symbol{}, err
	}
	var memberCount uint16
	if err := binary.Read(r, binary.BigEndian, &memberCount); err != nil {
		return Symbol{}, err
	}
	sym := Symbol{Name: name}
	for i := uint16(0); i < memberCount; i++ {
		memberName, err := readString(r)
		if err != nil {
			return Symbol{}, err
		}
		memberType, err := readString(r)
		if err != nil {
			return Symbol{}, err
		}
		sym.MemberNames = append(sym.MemberNames, memberName)
		sym.MemberTypes = append(sym.MemberTypes, memberType)
	}
	return sym, nil
}

func readFunctionSymbol(r io.Reader) (Symbol, error) {
	name, err := readString(r)
	if err != nil {
		return Symbol{}, err
	}
	returnType, err := readString(r)
	if err != nil {
		return Symbol{}, err
	}
	var paramCount uint16
	if err := binary.Read(r, binary.BigEndian, &paramCount); err != nil {
		return Symbol{}, err
	}
	sym := Symbol{Name: name, IsFunction: true, ReturnType: returnType}
	for i := uint16(0); i < paramCount; i++ {
		paramType, err := readString(r)
		if err != nil {
			return Symbol{}, err
		}
		sym.ParameterTypes = append(sym.ParameterTypes, paramType)
	}
	return sym, nil
}
