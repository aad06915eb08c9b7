/*
PixFilter is a command line tool for applying color and emboss filter chains to image files.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package main

import (
  "errors"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "regexp"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter"
  "github.com/InfinityTools/pixfilter/config"
  "github.com/InfinityTools/pixfilter/filter"
  "github.com/InfinityTools/pixfilter/graphics"
  "github.com/InfinityTools/pixfilter/palette"
)


const TOOL_NAME = "PixFilter"

// Appended to output file names if no output directory is specified.
const OUTPUT_SUFFIX = "_filtered"


func main() {
  err := loadArgs(os.Args)
  if err != nil {
    fmt.Printf("%v\n", err)
    os.Exit(1)
  }

  // Setting global options
  if b, x := argsVerbose(); x {
    if b {
      logging.SetVerbosity(logging.LOG)
    } else {
      logging.SetVerbosity(logging.ERROR)
    }
  }
  logging.SetPrefixCaller(false)
  if b, x := argsLogStyle(); x && b {
    logging.SetPrefixTimestamp(true)
    logging.SetPrefixLevel(true)
  } else {
    logging.SetPrefixTimestamp(false)
    logging.SetPrefixLevel(false)
  }

  reg := filter.NewDefaultRegistry()
  if _, x := argsVersion(); x {
    pixfilter.PrintVersion(TOOL_NAME)
  } else if _, x := argsHelp(); x {
    printHelp()
  } else if _, x := argsList(); x {
    printFilterList(os.Stdout, reg)
  } else if _, x := argsDump(); !x && argsExtraLength() == 0 {
    printHelp()
  } else {
    err = run(reg)
    if err != nil {
      logging.Errorf("%v\n", err)
      os.Exit(1)
    }
  }
}


func run(reg *filter.Registry) error {
  chain, err := buildChain(reg)
  if err != nil { return err }

  if file, x := argsDump(); x {
    err = dumpChain(chain, file)
    if err != nil { return err }
  }

  length := argsExtraLength()
  if length == 0 { return nil }
  if chain.Len() == 0 { return errors.New("No filters specified") }
  if b, x := argsThreaded(); x { filter.SetMultiThreaded(b) }

  logging.Infoln("Starting image conversion")
  for idx := 0; idx < length; idx++ {
    imageFile := argsExtra(idx)
    if len(imageFile) == 0 { continue }  // should not happen
    logging.Infof("Starting job %d: %s\n", idx, imageFile)
    err := convertImage(chain, imageFile)
    if err != nil { return fmt.Errorf("Job %d: %v", idx, err) }
    logging.Infof("Finished job %d\n", idx)
  }
  logging.Infoln("Image conversion finished successfully.")

  return nil
}


// Assembles the filter chain from configuration file and command line options.
func buildChain(reg *filter.Registry) (*filter.Chain, error) {
  chain := filter.NewChain()
  if configFile, x := argsConfig(); x {
    var r io.Reader = nil
    if configFile == "-" {
      r = os.Stdin
    } else {
      fin, err := os.Open(configFile)
      if err != nil { return nil, fmt.Errorf("Cannot open %q: %v", configFile, err) }
      defer fin.Close()
      r = fin
    }
    ctx := filter.NewValidationContext()
    c, err := config.LoadChain(r, reg, ctx)
    if err != nil { return nil, fmt.Errorf("Error parsing configuration: %v", err) }
    chain = c
  }

  if defs, x := argsFilters(); x {
    for _, def := range defs {
      f, err := parseFilterDefinition(reg, def)
      if err != nil { return nil, fmt.Errorf("Filter definition %q: %v", def, err) }
      logging.Logf("Adding filter #%d: %s\n", chain.Len(), f.GetType())
      chain.Add(f)
    }
  }

  if options, x := argsSetOptions(); x {
    err := applyFilterOptions(chain, options)
    if err != nil { return nil, err }
  }

  return chain, nil
}


// Creates a filter from a definition of the form "type[:value[:active]]". The filter type may be specified without
// type suffix. The value sets the first filter-specific attribute, e.g. "value" or "snapshot".
func parseFilterDefinition(reg *filter.Registry, def string) (filter.Filter, error) {
  parts := strings.Split(def, ":")
  if len(parts) > 3 { return nil, errors.New("Too many fields") }

  ftype, ok := reg.Resolve(parts[0])
  if !ok { return nil, fmt.Errorf("%w: %s", filter.ErrUnknownFilterType, strings.TrimSpace(parts[0])) }
  fac, _ := reg.Lookup(ftype)
  attrs := fac.Attributes()

  doc := filter.Document{filter.ATTR_TYPE: string(ftype)}
  for _, attr := range attrs {
    if attr.Required { doc[attr.Name] = attr.Ref }
  }
  if len(parts) > 1 && len(strings.TrimSpace(parts[1])) > 0 {
    if len(attrs) == 0 { return nil, fmt.Errorf("Filter %s does not take a value", ftype) }
    doc[attrs[0].Name] = strings.TrimSpace(parts[1])
  }
  if len(parts) > 2 { doc[filter.ATTR_ACTIVE] = strings.TrimSpace(parts[2]) }

  return reg.Decode(doc, nil)
}


// Applies option overrides of the form "idx:key=value" to the filters in the chain.
func applyFilterOptions(chain *filter.Chain, options []string) error {
  reg := regexp.MustCompile("(0|[1-9][0-9]*):([^=]+)=(.*)")
  for _, option := range options {
    values := reg.FindStringSubmatch(option)  // should return []string{"full-string", "idx", "key", "value"}
    if values == nil || len(values) < 4 { return fmt.Errorf("Invalid filter option: %s", option) }
    index, err := strconv.Atoi(strings.TrimSpace(values[1]))
    if err != nil { return fmt.Errorf("Invalid filter index: %s", values[1]) }
    key, value := strings.TrimSpace(values[2]), strings.TrimSpace(values[3])
    if index < 0 || index >= chain.Len() {
      logging.Warnf("Filter index out of bounds: %d. Skipping option...\n", index)
      continue
    }
    f := chain.Get(index)
    logging.Logf("Filter #%d (%s): Overriding option %s = %s\n", index, f.GetType(), key, value)
    err = f.SetOption(key, value)
    if err != nil {
      logging.Warnf("Filter #%d (%s): Could not set option %s = %s: %v\n", index, f.GetType(), key, value, err)
    }
  }
  return nil
}


// Writes the normalized filter chain to the specified file or standard output.
func dumpChain(chain *filter.Chain, file string) error {
  format := config.FORMAT_JSON
  if strings.EqualFold(filepath.Ext(file), ".xml") { format = config.FORMAT_XML }
  if s, x := argsDumpType(); x { format = s }
  compact, _ := argsCompact()

  var w io.Writer = nil
  if file == "-" {
    w = os.Stdout
  } else {
    logging.Infof("Writing filter configuration: %s\n", file)
    fout, err := os.Create(file)
    if err != nil { return fmt.Errorf("Cannot create %q: %v", file, err) }
    defer fout.Close()
    w = fout
  }
  err := config.SaveChain(w, chain, format, compact)
  if err != nil { return fmt.Errorf("Error writing filter configuration: %v", err) }
  return nil
}


// Loads, filters and saves a single image file.
func convertImage(chain *filter.Chain, imageFile string) error {
  g, err := loadGraphics(imageFile)
  if err != nil { return err }
  numFrames := g.GetImageLength()
  logging.Logf("Applying %d filter(s) to %d frame(s)\n", chain.Len(), numFrames)

  copyFirst, _ := argsCopy()
  bufs, err := chain.ApplyAll(g.GetBuffers(), copyFirst)
  if err != nil { return err }
  err = g.SetBuffers(bufs)
  if err != nil { return err }

  // setting up output options
  outType := g.GetImageType()
  if t, x := argsOutputType(); x { outType = t }
  outDir, _ := argsOutputDir()
  suffix := ""
  if len(outDir) == 0 { suffix = OUTPUT_SUFFIX }
  if !directoryExists(outDir) {
    err := os.MkdirAll(outDir, 0755)
    if err != nil { return fmt.Errorf("Cannot create output path %q: %v", outDir, err) }
  }
  ext := graphics.TypeExtension(outType)
  if outType == graphics.TYPE_GIF {
    err = setupGif(g)
    if err != nil { return err }
  }

  if outType == graphics.TYPE_GIF || numFrames == 1 {
    return saveGraphics(g, config.AssembleFilePath(outDir, imageFile, suffix, ext, -1, 0), outType, 0)
  }

  // formats without animation support get one file per frame
  width := len(strconv.Itoa(numFrames - 1))
  for idx := 0; idx < numFrames; idx++ {
    err := saveGraphics(g, config.AssembleFilePath(outDir, imageFile, suffix, ext, idx, width), outType, idx)
    if err != nil { return err }
  }
  return nil
}


// Applies color reduction options for GIF output.
func setupGif(g *graphics.Graphics) error {
  opts := palette.DefaultOptions()
  if i, x := argsGifQualityMin(); x { opts.QualityMin = i }
  if i, x := argsGifQualityMax(); x { opts.QualityMax = i }
  if opts.QualityMin > opts.QualityMax { opts.QualityMin = opts.QualityMax }
  if i, x := argsGifSpeed(); x { opts.Speed = i }
  if f, x := argsGifDither(); x { opts.Dither = f }
  if i, x := argsGifSort(); x { opts.SortFlags = i }
  g.SetQuantization(opts)

  if palFile, x := argsGifPalette(); x && len(palFile) > 0 {
    fin, err := os.Open(palFile)
    if err != nil { return fmt.Errorf("Cannot open palette %q: %v", palFile, err) }
    defer fin.Close()
    pal, err := palette.Import(fin)
    if err != nil { return fmt.Errorf("Palette %q: %v", palFile, err) }
    logging.Logf("Using external palette with %d colors: %s\n", len(pal), palFile)
    g.SetPalette(pal)
  }
  return g.Error()
}


// Loads graphics file
func loadGraphics(fileName string) (*graphics.Graphics, error) {
  fin, err := os.Open(fileName)
  if err != nil { return nil, fmt.Errorf("Could not open %q: %v", fileName, err) }
  defer fin.Close()

  retVal := graphics.Import(fin)
  return retVal, retVal.Error()
}


// Saves the specified frame, or all frames for GIF output, to the given file
func saveGraphics(g *graphics.Graphics, fileName string, format, index int) error {
  logging.Logf("Writing output file: %s\n", fileName)
  fout, err := os.Create(fileName)
  if err != nil { return fmt.Errorf("Could not create %q: %v", fileName, err) }
  defer fout.Close()

  g.Export(fout, format, index)
  if g.Error() != nil { return fmt.Errorf("Could not write %q: %v", fileName, g.Error()) }
  return nil
}


// Prints all supported filter types with their attributes.
func printFilterList(w io.Writer, reg *filter.Registry) {
  fmt.Fprintln(w, "Supported filter types:")
  for _, ftype := range reg.Types() {
    fac, _ := reg.Lookup(ftype)
    fmt.Fprintf(w, "  %s\n", ftype)
    for _, attr := range fac.Attributes() {
      switch attr.Kind {
        case filter.AttributeNumber:
          fmt.Fprintf(w, "      %-10s number in range [%v, %v], default: %v\n", attr.Name, attr.Min, attr.Max, attr.Ref)
        case filter.AttributeBool:
          fmt.Fprintf(w, "      %-10s boolean, default: false\n", attr.Name)
      }
    }
  }
}


func printHelp() {
  fmt.Printf("Usage: %s [options] image [image2 ...]\n", os.Args[0])
  const helpText = "Applies a chain of color and emboss filters to BMP, GIF, JPEG or PNG images.\n" +
                   "\n" +
                // "...............................................................................\n" +
                   "Options:\n" +
                   "  --config file             Load the filter chain from an XML or JSON\n" +
                   "                            configuration file. Specify minus sign (-) to read\n" +
                   "                            from standard input.\n" +
                   "  --filter type[:v[:a]]     Append a filter to the chain. 'type' is the filter\n" +
                   "                            type, with or without the ImageDataFilterType\n" +
                   "                            suffix. 'v' is an optional filter value and 'a' an\n" +
                   "                            optional active state (true or false). Add multiple\n" +
                   "                            --filter instances to append multiple filters.\n" +
                   "  --set idx:key=value       Set or override a filter option. 'idx' indicates\n" +
                   "                            the filter index in the chain, starting at index 0.\n" +
                   "                            'key' and 'value' define a single filter option key\n" +
                   "                            and value pair. Wrap the whole definition in quotes\n" +
                   "                            if it contains spaces.\n" +
                   "  --list                    Print all supported filter types and terminate.\n" +
                   "  --output-dir path         Write output files into the specified directory.\n" +
                   "                            Output files are placed next to the source files\n" +
                   "                            with the suffix \"" + OUTPUT_SUFFIX + "\" otherwise.\n" +
                   "  --output-type type        Set output file format. Supported types: png, bmp,\n" +
                   "                            gif, jpg. Defaults to the format of the source file.\n" +
                   "                            Frames of animated GIFs are written to individual\n" +
                   "                            files for formats other than gif.\n" +
                   "  --gif-quality-min qmin    Set minimum quality for GIF color reduction.\n" +
                   "                            Allowed range: [0, 100]. Default: 80\n" +
                   "  --gif-quality-max qmax    Set maximum quality for GIF color reduction.\n" +
                   "                            Allowed range: [0, 100]. Default: 100\n" +
                   "  --gif-speed value         Set speed for GIF palette generation. Allowed\n" +
                   "                            range: [1, 10]. Default: 3\n" +
                   "  --gif-dither value        Set dither strength for GIF output. Value must be\n" +
                   "                            in range [0.0, 1.0]. Set to 0 to disable.\n" +
                   "  --gif-sort type           Sort the GIF palette by the specified type. The\n" +
                   "                            following types are recognized: none, lightness,\n" +
                   "                            saturation, hue, red, green, blue, alpha. Append\n" +
                   "                            _reversed to reverse the sort order.\n" +
                   "  --gif-palette file        Map GIF output to the palette of the specified\n" +
                   "                            graphics (BMP, GIF, PNG) or palette file (PAL,\n" +
                   "                            ACT) instead of generating a palette.\n" +
                   "  --copy                    Apply filters to a copy of the decoded pixel data.\n" +
                   "  --dump file               Write the resulting filter chain to the specified\n" +
                   "                            file. Specify minus sign (-) to write to standard\n" +
                   "                            output. Image files are optional with this option.\n" +
                   "  --dump-type type          Format of the dumped filter chain: json or xml.\n" +
                   "                            Determined by file extension if omitted.\n" +
                   "  --compact                 Write the dumped filter chain without indentation.\n" +
                   "  --threaded                Enable multithreading for applying filters. May\n" +
                   "                            speed up processing of animated GIFs on multi-core\n" +
                   "                            systems. Enabled by default if multiple CPU cores\n" +
                   "                            are detected.\n" +
                   "  --no-threaded             Disable multithreading for applying filters.\n" +
                   "  --verbose                 Show additional log messages during the conversion\n" +
                   "                            process.\n" +
                   "  --silent                  Suppress any log messages during the conversion\n" +
                   "                            process except for errors.\n" +
                   "  --log-style               Print log messages in log style, complete with\n" +
                   "                            timestamp and log level.\n" +
                   "  --help                    Print this help and terminate.\n" +
                   "  --version                 Print version information and terminate."
  fmt.Println(helpText)
}


// Used internally. Returns whether the specified path points to an existing directory.
func directoryExists(dir string) bool {
  if len(dir) == 0 { return true }  // special
  fi, err := os.Stat(dir)
  if err != nil { return false }
  return fi.Mode().IsDir()
}
