package envvar

const (
	// DenobenchEnv is the environment variable used to determine the environment
	DenobenchEnv = "DENOBENCH_ENV"

	// DenobenchPython is the environment variable used to override the Python interpreter
	DenobenchPython = "DENOBENCH_PYTHON"

	// DenobenchWeightsPath is the environment variable used to override the weights directory
	DenobenchWeightsPath = "DENOBENCH_WEIGHTS_PATH"

	// CUDAVisibleDevices restricts which accelerator a child process sees.
	// The driver sets it on each launched process, never on its own environment.
	CUDAVisibleDevices = "CUDA_VISIBLE_DEVICES"
)
