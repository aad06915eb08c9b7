package main
// Handles command line arguments for pixfilter.

import (
  "errors"
  "fmt"
  "os"
  "strings"

  "github.com/InfinityTools/go-cmdargs"
  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter/config"
  "github.com/InfinityTools/pixfilter/graphics"
  "github.com/InfinityTools/pixfilter/palette"
)

const (
  CMDOPT_HELP = "help"
  CMDOPT_VERSION = "version"
  CMDOPT_VERBOSE = "verbose"
  CMDOPT_SILENT = "silent"
  CMDOPT_LOG_STYLE = "log-style"
  CMDOPT_THREADED = "threaded"
  CMDOPT_NO_THREADED = "no-threaded"
  CMDOPT_LIST = "list"
  CMDOPT_CONFIG = "config"
  CMDOPT_FILTER = "filter"
  CMDOPT_SET = "set"
  CMDOPT_COPY = "copy"
  CMDOPT_OUTPUT_DIR = "output-dir"
  CMDOPT_OUTPUT_TYPE = "output-type"
  CMDOPT_DUMP = "dump"
  CMDOPT_DUMP_TYPE = "dump-type"
  CMDOPT_COMPACT = "compact"
  CMDOPT_GIF_QUALITY_MIN = "gif-quality-min"
  CMDOPT_GIF_QUALITY_MAX = "gif-quality-max"
  CMDOPT_GIF_SPEED = "gif-speed"
  CMDOPT_GIF_DITHER = "gif-dither"
  CMDOPT_GIF_SORT = "gif-sort"
  CMDOPT_GIF_PALETTE = "gif-palette"
)

type OptBool struct { value bool; set bool }
type OptInt struct { value int; set bool }
type OptFloat struct { value float32; set bool }
type OptText struct { value string; set bool }

type CmdOptions struct {
  help                OptBool
  version             OptBool
  verbose             OptBool
  logStyle            OptBool
  threaded            OptBool
  list                OptBool
  config              OptText
  filter              []OptText
  set                 []OptText
  copy                OptBool
  outputDir           OptText
  outputType          OptInt
  dump                OptText
  dumpType            OptText
  compact             OptBool
  gifQualityMin       OptInt
  gifQualityMax       OptInt
  gifSpeed            OptInt
  gifDither           OptFloat
  gifSort             OptInt
  gifPalette          OptText
  optionsLength       int
  argSelf             string
  argsExtra           []string
}

var cmdOptions  CmdOptions


func loadArgs(args []string) error {
  cmdOptions = CmdOptions{}
  params := cmdargs.Create()
  params.AddParameter(CMDOPT_HELP, nil, 0)
  params.AddParameter(CMDOPT_VERSION, nil, 0)
  params.AddParameter(CMDOPT_VERBOSE, nil, 0)
  params.AddParameter(CMDOPT_SILENT, nil, 0)
  params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
  params.AddParameter(CMDOPT_THREADED, nil, 0)
  params.AddParameter(CMDOPT_NO_THREADED, nil, 0)
  params.AddParameter(CMDOPT_LIST, nil, 0)
  params.AddParameter(CMDOPT_CONFIG, nil, 1)
  params.AddParameter(CMDOPT_FILTER, nil, 1)
  params.AddParameter(CMDOPT_SET, nil, 1)
  params.AddParameter(CMDOPT_COPY, nil, 0)
  params.AddParameter(CMDOPT_OUTPUT_DIR, nil, 1)
  params.AddParameter(CMDOPT_OUTPUT_TYPE, nil, 1)
  params.AddParameter(CMDOPT_DUMP, nil, 1)
  params.AddParameter(CMDOPT_DUMP_TYPE, nil, 1)
  params.AddParameter(CMDOPT_COMPACT, nil, 0)
  params.AddParameter(CMDOPT_GIF_QUALITY_MIN, nil, 1)
  params.AddParameter(CMDOPT_GIF_QUALITY_MAX, nil, 1)
  params.AddParameter(CMDOPT_GIF_SPEED, nil, 1)
  params.AddParameter(CMDOPT_GIF_DITHER, nil, 1)
  params.AddParameter(CMDOPT_GIF_SORT, nil, 1)
  params.AddParameter(CMDOPT_GIF_PALETTE, nil, 1)

  err := params.Evaluate(args)
  if err != nil { return err }

  // validating extra arguments
  cmdOptions.argSelf = params.GetArgSelf()
  cmdOptions.argsExtra = make([]string, 0)
  for i := 0; i < params.GetArgExtraLength(); i++ {
    s := params.GetArgExtra(i).ToString()
    // Expanding wildcard
    expanded := params.GetExpandedArgExtra(i)
    if len(expanded) == 0 { expanded = []string{s} }  // falling back to check directly
    for _, name := range expanded {
      fi, err := os.Stat(name)
      if err != nil { return fmt.Errorf("Image file at %d: %v", len(cmdOptions.argsExtra), err) }
      if !fi.Mode().IsRegular() { return fmt.Errorf("Image file does not exist: %q", name) }
      cmdOptions.argsExtra = append(cmdOptions.argsExtra, name)
    }
  }

  // validating options
  cmdOptions.filter = make([]OptText, 0)
  cmdOptions.set = make([]OptText, 0)
  cmdOptions.optionsLength = 0
  for idx := 0; idx < params.GetArgLength(); idx++ {
    arg, err := params.GetArgAt(idx)
    if err != nil {
      logging.Warnf("Could not parse command line option at index %d. Skipping...\n", idx)
      continue
    }
    switch arg.Name {
      case CMDOPT_HELP:
        if !cmdOptions.help.set { cmdOptions.optionsLength++ }
        cmdOptions.help = OptBool{true, true}
        return nil
      case CMDOPT_VERSION:
        if !cmdOptions.version.set { cmdOptions.optionsLength++ }
        cmdOptions.version = OptBool{true, true}
        return nil
      case CMDOPT_VERBOSE:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{true, true}
      case CMDOPT_SILENT:
        if !cmdOptions.verbose.set { cmdOptions.optionsLength++ }
        cmdOptions.verbose = OptBool{false, true}
      case CMDOPT_LOG_STYLE:
        if !cmdOptions.logStyle.set { cmdOptions.optionsLength++ }
        cmdOptions.logStyle = OptBool{true, true}
      case CMDOPT_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{true, true}
      case CMDOPT_NO_THREADED:
        if !cmdOptions.threaded.set { cmdOptions.optionsLength++ }
        cmdOptions.threaded = OptBool{false, true}
      case CMDOPT_LIST:
        if !cmdOptions.list.set { cmdOptions.optionsLength++ }
        cmdOptions.list = OptBool{true, true}
      case CMDOPT_CONFIG:
        if !cmdOptions.config.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No configuration file specified", arg.Name) }
          cmdOptions.config = OptText{s, true}
        }
      case CMDOPT_FILTER:
        if len(arg.Arguments) > 0 {
          cmdOptions.optionsLength++
          cmdOptions.filter = append(cmdOptions.filter, OptText{arg.Arguments[0].ToString(), true})
        }
      case CMDOPT_SET:
        if len(arg.Arguments) > 0 {
          cmdOptions.optionsLength++
          cmdOptions.set = append(cmdOptions.set, OptText{arg.Arguments[0].ToString(), true})
        }
      case CMDOPT_COPY:
        if !cmdOptions.copy.set { cmdOptions.optionsLength++ }
        cmdOptions.copy = OptBool{true, true}
      case CMDOPT_OUTPUT_DIR:
        if !cmdOptions.outputDir.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.outputDir = OptText{arg.Arguments[0].ToString(), true}
        }
      case CMDOPT_OUTPUT_TYPE:
        if !cmdOptions.outputType.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if t := graphics.ParseType(arg.Arguments[0].ToString()); t != graphics.TYPE_UNKNOWN {
            cmdOptions.outputType = OptInt{t, true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_DUMP:
        if !cmdOptions.dump.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := arg.Arguments[0].ToString()
          if len(s) == 0 { return fmt.Errorf("Option %q: No output file specified", arg.Name) }
          cmdOptions.dump = OptText{s, true}
        }
      case CMDOPT_DUMP_TYPE:
        if !cmdOptions.dumpType.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          s := strings.ToLower(arg.Arguments[0].ToString())
          if s != config.FORMAT_XML && s != config.FORMAT_JSON {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
          cmdOptions.dumpType = OptText{s, true}
        }
      case CMDOPT_COMPACT:
        if !cmdOptions.compact.set { cmdOptions.optionsLength++ }
        cmdOptions.compact = OptBool{true, true}
      case CMDOPT_GIF_QUALITY_MIN:
        if !cmdOptions.gifQualityMin.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 0 && i <= 100 {
            cmdOptions.gifQualityMin = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_QUALITY_MAX:
        if !cmdOptions.gifQualityMax.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 0 && i <= 100 {
            cmdOptions.gifQualityMax = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_SPEED:
        if !cmdOptions.gifSpeed.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if i, x := arg.Arguments[0].Int(); x && i >= 1 && i <= 10 {
            cmdOptions.gifSpeed = OptInt{int(i), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_DITHER:
        if !cmdOptions.gifDither.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 1.0 {
            cmdOptions.gifDither = OptFloat{float32(f), true}
          } else {
            return fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
          }
        }
      case CMDOPT_GIF_SORT:
        if !cmdOptions.gifSort.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          flags, err := palette.ParseSort(arg.Arguments[0].ToString())
          if err != nil { return fmt.Errorf("Option %q: %v", arg.Name, err) }
          cmdOptions.gifSort = OptInt{flags, true}
        }
      case CMDOPT_GIF_PALETTE:
        if !cmdOptions.gifPalette.set { cmdOptions.optionsLength++ }
        if len(arg.Arguments) > 0 {
          cmdOptions.gifPalette = OptText{arg.Arguments[0].ToString(), true}
        }
      default:
        return fmt.Errorf("Unrecognized option: %q", arg.Name)
    }
  }

  // Invalid combination: Options without image files are only useful for dumping or listing filters
  if len(cmdOptions.argsExtra) == 0 && cmdOptions.optionsLength > 0 && !cmdOptions.dump.set && !cmdOptions.list.set {
    return errors.New("No image file specified")
  }

  return nil
}


func argsExtraLength() int {
  if cmdOptions.argsExtra == nil { return 0 }
  return len(cmdOptions.argsExtra)
}

func argsExtra(index int) string {
  if cmdOptions.argsExtra == nil { return "" }
  if index < 0 || index >= len(cmdOptions.argsExtra) { return "" }
  return cmdOptions.argsExtra[index]
}

func argsLength() int {
  return cmdOptions.optionsLength
}

func argsHelp() (bool, bool) {
  return cmdOptions.help.value, cmdOptions.help.set
}

func argsVersion() (bool, bool) {
  return cmdOptions.version.value, cmdOptions.version.set
}

func argsVerbose() (bool, bool) {
  return cmdOptions.verbose.value, cmdOptions.verbose.set
}

func argsLogStyle() (bool, bool) {
  return cmdOptions.logStyle.value, cmdOptions.logStyle.set
}

func argsThreaded() (bool, bool) {
  return cmdOptions.threaded.value, cmdOptions.threaded.set
}

func argsList() (bool, bool) {
  return cmdOptions.list.value, cmdOptions.list.set
}

func argsConfig() (string, bool) {
  return cmdOptions.config.value, cmdOptions.config.set
}

func argsFilters() ([]string, bool) {
  return optTextValues(cmdOptions.filter)
}

func argsSetOptions() ([]string, bool) {
  return optTextValues(cmdOptions.set)
}

func argsCopy() (bool, bool) {
  return cmdOptions.copy.value, cmdOptions.copy.set
}

func argsOutputDir() (string, bool) {
  return cmdOptions.outputDir.value, cmdOptions.outputDir.set
}

func argsOutputType() (int, bool) {
  return cmdOptions.outputType.value, cmdOptions.outputType.set
}

func argsDump() (string, bool) {
  return cmdOptions.dump.value, cmdOptions.dump.set
}

func argsDumpType() (string, bool) {
  return cmdOptions.dumpType.value, cmdOptions.dumpType.set
}

func argsCompact() (bool, bool) {
  return cmdOptions.compact.value, cmdOptions.compact.set
}

func argsGifQualityMin() (int, bool) {
  return cmdOptions.gifQualityMin.value, cmdOptions.gifQualityMin.set
}

func argsGifQualityMax() (int, bool) {
  return cmdOptions.gifQualityMax.value, cmdOptions.gifQualityMax.set
}

func argsGifSpeed() (int, bool) {
  return cmdOptions.gifSpeed.value, cmdOptions.gifSpeed.set
}

func argsGifDither() (float32, bool) {
  return cmdOptions.gifDither.value, cmdOptions.gifDither.set
}

func argsGifSort() (int, bool) {
  return cmdOptions.gifSort.value, cmdOptions.gifSort.set
}

func argsGifPalette() (string, bool) {
  return cmdOptions.gifPalette.value, cmdOptions.gifPalette.set
}

func optTextValues(list []OptText) ([]string, bool) {
  retVal := make([]string, len(list))
  for idx, v := range list {
    retVal[idx] = v.value
  }
  return retVal, len(list) > 0
}
