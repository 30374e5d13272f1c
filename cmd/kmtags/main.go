// Package main is the entry point for the kmtags binary.
// It lists the keymaster tag set and converts or fingerprints authorization
// documents between wire formats.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zoobzio/keymaster"
	"github.com/zoobzio/keymaster/bson"
	"github.com/zoobzio/keymaster/cbor"
	"github.com/zoobzio/keymaster/json"
	"github.com/zoobzio/keymaster/msgpack"
	"github.com/zoobzio/keymaster/xml"
	"github.com/zoobzio/keymaster/yaml"
)

const (
	defaultFormat = "json"
	defaultHash   = string(keymaster.HashSHA256)
)

// codecs maps --format names to codec constructors.
var codecs = map[string]func() keymaster.Codec{
	"json":    json.New,
	"xml":     xml.New,
	"yaml":    yaml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
	"cbor":    cbor.New,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for kmtags
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kmtags",
		Short: "Inspect keymaster tags and authorization documents",
		Long: `kmtags lists the keymaster 4.0 tag set and converts, fingerprints or
prints authorization documents in any supported wire format.

Formats: ` + strings.Join(formatNames(), ", ") + `

Example:
  kmtags tags --type ENUM_REP
  kmtags convert --from yaml --to cbor --out key.cbor key.yaml
  kmtags fingerprint --format cbor --hash sha512 key.cbor`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newTagsCmd(), newConvertCmd(), newFingerprintCmd(), newShowCmd())
	return rootCmd
}

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List declared tags with their category and numeric value",
		Args:  cobra.NoArgs,
		RunE:  runTags,
	}
	cmd.Flags().StringP("type", "t", "", "Only list tags of this category (e.g. UINT, BYTES)")
	return cmd
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode an authorization document in another format",
		Long:  "Decode FILE (or stdin when FILE is -) and write it in the target format.",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	cmd.Flags().StringP("from", "f", defaultFormat, "Input format")
	cmd.Flags().String("to", defaultFormat, "Output format")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	return cmd
}

func newFingerprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fingerprint FILE",
		Short: "Print the order-independent digest of an authorization document",
		Args:  cobra.ExactArgs(1),
		RunE:  runFingerprint,
	}
	cmd.Flags().StringP("format", "f", defaultFormat, "Input format")
	cmd.Flags().String("hash", defaultHash, "Hash algorithm (sha256, sha512)")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print an authorization document with sensitive payloads masked",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().StringP("format", "f", defaultFormat, "Input format")
	return cmd
}

func runTags(cmd *cobra.Command, _ []string) error {
	typeName, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}

	var filter *keymaster.TagType
	if typeName != "" {
		typ, err := keymaster.ParseTagType(strings.ToUpper(typeName))
		if err != nil {
			return err
		}
		filter = &typ
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tag := range keymaster.Tags() {
		if filter != nil && tag.Type() != *filter {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t0x%08x\n", tag, tag.Type(), tag.MaskedTag(), uint32(tag))
	}
	return w.Flush()
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, err := flagCodec(cmd, "from")
	if err != nil {
		return err
	}
	to, err := flagCodec(cmd, "to")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	set, err := readSet(cmd, args[0], from)
	if err != nil {
		return err
	}
	data, err := keymaster.Use(to).Marshal(commandContext(cmd), set)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0600)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	codec, err := flagCodec(cmd, "format")
	if err != nil {
		return err
	}
	hash, err := cmd.Flags().GetString("hash")
	if err != nil {
		return fmt.Errorf("failed to get hash flag: %w", err)
	}

	set, err := readSet(cmd, args[0], codec)
	if err != nil {
		return err
	}
	sum, err := keymaster.Fingerprint(set, keymaster.HashAlgo(strings.ToLower(hash)))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sum)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	codec, err := flagCodec(cmd, "format")
	if err != nil {
		return err
	}
	set, err := readSet(cmd, args[0], codec)
	if err != nil {
		return err
	}
	for _, p := range set {
		fmt.Fprintln(cmd.OutOrStdout(), keymaster.Redact(p))
	}
	return nil
}

// flagCodec resolves the codec named by the given flag.
func flagCodec(cmd *cobra.Command, flag string) (keymaster.Codec, error) {
	name, err := cmd.Flags().GetString(flag)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	newCodec, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(formatNames(), ", "))
	}
	return newCodec(), nil
}

// readSet decodes the document at path, or stdin when path is "-".
func readSet(cmd *cobra.Command, path string, codec keymaster.Codec) (keymaster.AuthorizationSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is the user's own argument
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return keymaster.Use(codec).Unmarshal(commandContext(cmd), data)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func formatNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
