package stacktrace

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-errtrace/helper"
)

const standardLibrary = "std"

var (
	readBuildInfo  = sync.OnceValues(debug.ReadBuildInfo)
	packagingCache helper.SyncMap[string, *Packaging]
)

// packagingOf resolves the module a class belongs to. It returns nil when the
// module is unknown, for example when the binary has no build information.
func packagingOf(class string) *Packaging {
	if class == "" {
		return nil
	}
	return packagingCache.GetOrCompute(class, resolvePackaging)
}

func resolvePackaging(class string) *Packaging {
	if isStandardLibrary(class) {
		return &Packaging{Artifact: standardLibrary, Version: runtime.Version()}
	}
	info, ok := readBuildInfo()
	if !ok {
		return nil
	}
	if class == "main" || strings.HasPrefix(class, "main.") || belongsTo(class, info.Main.Path) {
		return moduleVersion(&info.Main)
	}
	var best *debug.Module
	for _, module := range info.Deps {
		if belongsTo(class, module.Path) && (best == nil || len(module.Path) > len(best.Path)) {
			best = module
		}
	}
	if best == nil {
		return nil
	}
	return moduleVersion(best)
}

func moduleVersion(module *debug.Module) *Packaging {
	if module.Replace != nil && module.Replace.Version != "" {
		return &Packaging{Artifact: module.Path, Version: module.Replace.Version}
	}
	return &Packaging{Artifact: module.Path, Version: module.Version}
}

// belongsTo reports whether class is declared in a package of the module.
func belongsTo(class string, module string) bool {
	if module == "" || !strings.HasPrefix(class, module) {
		return false
	}
	if len(class) == len(module) {
		return true
	}
	next := class[len(module)]
	return next == '/' || next == '.'
}

// isStandardLibrary follows the go command: a package path whose first element
// has no dot belongs to the standard library.
func isStandardLibrary(class string) bool {
	first := class
	if slash := strings.IndexByte(class, '/'); slash >= 0 {
		first = class[:slash]
	} else if dot := strings.IndexByte(class, '.'); dot >= 0 {
		first = class[:dot]
	}
	return first != "main" && !strings.Contains(first, ".")
}
