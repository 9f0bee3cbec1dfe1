package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Module-internal layering: adapters on the outside, domain in the middle,
// and cross-module traffic only through port/in and dto.
func TestModuleLayering(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	modulesRoot := filepath.Join("..", "modules")

	walkErr := filepath.WalkDir(modulesRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		slash := filepath.ToSlash(path)
		module, layer := classify(slash)
		if module == "" || layer == "" {
			return nil
		}

		file, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range file.Imports {
			target := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(target, "tally/internal/modules/") {
				continue
			}
			if bad, reason := checkImport(module, layer, target); bad {
				t.Errorf("%s (%s) imports %s: %s", slash, layer, target, reason)
			}
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk modules: %v", walkErr)
	}
}

var layers = []string{
	"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto",
}

func classify(path string) (module, layer string) {
	parts := strings.Split(path, "/")
	for i := range parts {
		if parts[i] == "modules" && i+1 < len(parts) {
			module = parts[i+1]
			break
		}
	}
	for _, l := range layers {
		if strings.Contains(path, "/"+l+"/") {
			layer = l
			break
		}
	}
	return module, layer
}

func within(target, segment string) bool {
	return strings.Contains(target, "/"+segment+"/") || strings.HasSuffix(target, "/"+segment)
}

func checkImport(module, layer, target string) (bool, string) {
	if !strings.Contains(target, "/internal/modules/"+module+"/") {
		// Another module: only its published surface is reachable.
		if within(target, "port/in") || within(target, "dto") {
			return false, ""
		}
		return true, "cross-module imports must target port/in or dto"
	}

	switch layer {
	case "adapter/in":
		if !within(target, "port/in") && !within(target, "dto") {
			return true, "inbound adapters see only port/in and dto"
		}
	case "usecase":
		if within(target, "adapter/in") || within(target, "adapter/out") {
			return true, "usecases must not reach adapters"
		}
	case "service":
		if within(target, "adapter/in") || within(target, "adapter/out") || within(target, "usecase") {
			return true, "services must not reach adapters or usecases"
		}
	case "domain":
		if within(target, "adapter/in") || within(target, "adapter/out") ||
			within(target, "usecase") || within(target, "service") {
			return true, "domain depends on nothing above it"
		}
	}
	return false, ""
}
