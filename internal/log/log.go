// Package log provides colored terminal output for the forgeswarm
// orchestrator, optionally mirrored to a size-rotated log file so long runs
// leave an inspectable trail.
package log

import (
	"fmt"
	stdlog "log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ANSI escape codes for terminal colors.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[0;31m"
	colorGreen   = "\033[0;32m"
	colorYellow  = "\033[1;33m"
	colorCyan    = "\033[0;36m"
	colorMagenta = "\033[0;35m"
	colorWhite   = "\033[1;37m"
)

// sectionLine is the unicode box-draw separator used between run stages.
const sectionLine = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// OsExit is the function called by Fatal to terminate the process.
// It is a package-level variable so tests can replace it without subprocess overhead.
var OsExit = os.Exit

// fileLogger mirrors every message to a rotating file when non-nil.
// Mirrored lines carry the level tag but no ANSI codes.
var fileLogger *stdlog.Logger

// mirrorFile keeps the lumberjack handle so Close can flush it.
var mirrorFile *lumberjack.Logger

// EnableFileMirror starts mirroring all log output to path, rotating at 10 MB
// with three compressed backups kept.
func EnableFileMirror(path string) {
	mirrorFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	fileLogger = stdlog.New(mirrorFile, "", stdlog.LstdFlags)
}

// Close releases the file mirror, if one was enabled.
func Close() error {
	if mirrorFile == nil {
		return nil
	}
	err := mirrorFile.Close()
	mirrorFile = nil
	fileLogger = nil
	return err
}

func mirror(level, msg string) {
	if fileLogger != nil {
		fileLogger.Printf("[%s] %s", level, msg)
	}
}

// Info prints a white [INFO] message to stdout.
func Info(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorWhite, colorReset, msg)
	mirror("INFO", msg)
}

// Stage prints a magenta [STAGE] message to stdout, used for state machine
// transitions (planning, building, testing).
func Stage(msg string) {
	fmt.Printf("%s[STAGE]%s %s\n", colorMagenta, colorReset, msg)
	mirror("STAGE", msg)
}

// Success prints a green [SUCCESS] message to stdout.
func Success(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
	mirror("SUCCESS", msg)
}

// Warning prints a yellow [WARNING] message to stdout.
func Warning(msg string) {
	fmt.Printf("%s[WARNING]%s %s\n", colorYellow, colorReset, msg)
	mirror("WARNING", msg)
}

// Error prints a red [ERROR] message to stdout.
func Error(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
	mirror("ERROR", msg)
}

// Fatal prints a red [ERROR] message then exits with status 1.
func Fatal(msg string) {
	Error(msg)
	OsExit(1)
}

// Section prints a cyan unicode box-draw separator with a title.
func Section(title string) {
	fmt.Printf("\n%s%s%s\n", colorCyan, sectionLine, colorReset)
	fmt.Printf("%s%s%s\n", colorCyan, title, colorReset)
	fmt.Printf("%s%s%s\n\n", colorCyan, sectionLine, colorReset)
	mirror("SECTION", title)
}
