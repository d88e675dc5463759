package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/dependency"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/registry"
)

type modelOptions struct {
	config       string
	state        string
	overrides    map[string]string
	dump         bool
	printMetrics bool
}

// NewModelCmd returns a command evaluating every dependency of a model
// against a snapshot of variant activations.
func NewModelCmd() *cobra.Command {
	o := modelOptions{}

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Evaluate a dependency model",
		Long: `The vdlogic model command initializes a dependency model from a
        YAML description and prints whether each depender variant is enabled
        given the variant activations of the state file. The model file
        defaults to $` + dependency.ConfigEnvVarName + `.

        $ vdlogic model --config model.yaml --state state.yaml
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout())
		},
	}

	o.addFlags(cmd.Flags())
	if err := cmd.MarkFlagRequired("state"); err != nil {
		log.Fatalf("Failed to mark `state` flag for `model` subcommand as required")
	}

	return cmd
}

func (o *modelOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.config, "config", "c", "", "dependency model file")
	fs.StringVarP(&o.state, "state", "s", "", "variant activations file")
	fs.StringToStringVar(&o.overrides, "activate", nil, "variant activation overriding the state file, as PATH=BOOL")
	fs.BoolVar(&o.dump, "dump", false, "print the model tree")
	fs.BoolVar(&o.printMetrics, "metrics", false, "print the collected metrics")
}

func (o *modelOptions) run(out io.Writer) error {
	var (
		cfg *dependency.Config
		err error
	)
	if o.config != "" {
		cfg, err = dependency.LoadConfigFile(o.config)
	} else {
		cfg, err = dependency.ConfigFromEnv()
		if err == nil && cfg == nil {
			err = errors.Errorf("no model file given with --config or $%s", dependency.ConfigEnvVarName)
		}
	}
	if err != nil {
		return err
	}

	reg, err := registry.LoadFile(o.state)
	if err != nil {
		return err
	}
	for path, value := range o.overrides {
		active, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Errorf("invalid activation %q for variant %q", value, path)
		}
		reg.Set(path, active)
	}

	model := dependency.NewModel(reg, dependency.WithLogger(log.StandardLogger()))
	if err := model.Initialize(cfg); err != nil {
		return err
	}
	if err := metrics.NewMetricsModel(model).HandleMetrics(); err != nil {
		return err
	}

	for _, path := range model.Dependencies() {
		enabled, err := model.IsEnabled(path)
		if err != nil {
			return err
		}
		state := falseColor.Sprint("disabled")
		if enabled {
			state = trueColor.Sprint("enabled")
		}
		fmt.Fprintf(out, "%s: %s\n", path, state)
	}

	if o.dump {
		if err := model.Dump(out); err != nil {
			return err
		}
	}
	if o.printMetrics {
		return writeMetrics(out, prometheus.DefaultGatherer)
	}
	return nil
}

// writeMetrics prints the variant metric samples gathered by g.
func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "variant_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			var value float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}
