package config

const (
	// DefaultBuildDir is the default CMake build directory
	DefaultBuildDir = "build"
	// DefaultCTestPath is the ctest executable invoked for both passes
	DefaultCTestPath = "ctest"
	// ScratchDirName is the subdirectory of the build dir holding our logs
	ScratchDirName = ".ctest-2pass"
	// Pass1LogFile is the captured output of the quiet first pass
	Pass1LogFile = "pass1.log"
	// SummaryFile is the persisted run summary read by failed/view
	SummaryFile = "summary.json"
)

// SentinelFiles identify a directory as a CMake/CTest build directory.
// Either one is sufficient.
var SentinelFiles = []string{"CTestTestfile.cmake", "CMakeCache.txt"}

// LastFailedLogParts is the build-relative path of the structured failure
// log CTest writes after an aggregate run.
var LastFailedLogParts = []string{"Testing", "Temporary", "LastTestsFailed.log"}
