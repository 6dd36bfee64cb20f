package gschema

const (
	CompilerCommand = "glib-compile-schemas"

	NoCompileSchemasFlag = "no-compile-schemas"
	NoCompileSchemasEnv  = "NO_COMPILE_SCHEMAS"
)

func CompileArgs(dir string) []string {
	return []string{CompilerCommand, dir}
}
