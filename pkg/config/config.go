package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors a configuration struct field by field. Priority of values:
// environment > config file > `default` tag > zero value.
type Config struct {
	Ptr      reflect.Value
	Env      any
	File     any
	Default  any
	name     string // 小写
	propsMap map[string]*Config
	props    []*Config
	tag      reflect.StructTag
}

var durationType = reflect.TypeOf(time.Duration(0))

func (config *Config) Get(key string) (v *Config) {
	key = strings.ToLower(key)
	if config.propsMap == nil {
		config.propsMap = make(map[string]*Config)
	}
	if v, ok := config.propsMap[key]; ok {
		return v
	}
	v = &Config{
		name: key,
	}
	config.propsMap[key] = v
	config.props = append(config.props, v)
	return v
}

func (config *Config) Has(key string) (ok bool) {
	if config.propsMap == nil {
		return false
	}
	_, ok = config.propsMap[strings.ToLower(key)]
	return ok
}

// Parse 读取配置结构体的默认值和环境变量，prefix 为环境变量前缀
func (config *Config) Parse(s any, prefix ...string) (err error) {
	var t reflect.Type
	var v reflect.Value
	if vv, ok := s.(reflect.Value); ok {
		t, v = vv.Type(), vv
	} else {
		t, v = reflect.TypeOf(s), reflect.ValueOf(s)
	}
	if t.Kind() == reflect.Pointer {
		t, v = t.Elem(), v.Elem()
	}

	config.Ptr = v
	config.Default = v.Interface()

	if l := len(prefix); l > 0 {
		name := strings.ToLower(prefix[l-1])
		if tag := config.tag.Get("default"); tag != "" {
			var dv reflect.Value
			if dv, err = config.assign(name, tag); err != nil {
				return
			}
			v.Set(dv)
			config.Default = v.Interface()
		}
		if envValue := os.Getenv(strings.Join(prefix, "_")); envValue != "" && t.Kind() != reflect.Struct {
			var ev reflect.Value
			if ev, err = config.assign(name, envValue); err != nil {
				return
			}
			v.Set(ev)
			config.Env = v.Interface()
		}
	}

	if t.Kind() == reflect.Struct {
		for i, j := 0, t.NumField(); i < j; i++ {
			ft, fv := t.Field(i), v.Field(i)
			if !ft.IsExported() {
				continue
			}
			name := strings.ToLower(ft.Name)
			if tag := ft.Tag.Get("yaml"); tag != "" {
				if tag == "-" {
					continue
				}
				name, _, _ = strings.Cut(tag, ",")
			}
			prop := config.Get(name)
			prop.tag = ft.Tag
			if err = prop.Parse(fv, append(prefix, strings.ToUpper(name))...); err != nil {
				return
			}
		}
	}
	return
}

// ParseUserFile 读取用户配置文件，环境变量优先
func (config *Config) ParseUserFile(conf map[string]any) (err error) {
	if conf == nil {
		return
	}
	config.File = conf
	for k, v := range conf {
		if !config.Has(k) {
			continue
		}
		if prop := config.Get(k); prop.props != nil {
			if v == nil {
				continue
			}
			sub, ok := v.(map[string]any)
			if !ok {
				return fmt.Errorf("config %s: expected a mapping, got %T", k, v)
			}
			if err = prop.ParseUserFile(sub); err != nil {
				return
			}
		} else {
			var fv reflect.Value
			if fv, err = prop.assign(k, v); err != nil {
				return
			}
			prop.File = fv.Interface()
			if prop.Env == nil {
				prop.Ptr.Set(fv)
			}
		}
	}
	return
}

var regexPureNumber = regexp.MustCompile(`^\d+$`)

func (config *Config) assign(k string, v any) (target reflect.Value, err error) {
	ft := config.Ptr.Type()
	target = reflect.New(ft).Elem()
	if v == nil {
		return
	}
	source := reflect.ValueOf(v)
	switch {
	case ft == durationType:
		if source.Type() == durationType {
			target.Set(source)
		} else if source.IsZero() {
			target.SetInt(0)
		} else {
			timeStr := fmt.Sprint(v)
			d, perr := time.ParseDuration(timeStr)
			if perr != nil || regexPureNumber.MatchString(timeStr) {
				return target, fmt.Errorf("config %s: invalid duration %q, add a unit (ms,s,m,h)", k, timeStr)
			}
			target.SetInt(int64(d))
		}
	case ft.Kind() == reflect.String && source.Kind() == reflect.String:
		target.SetString(source.String())
	default:
		tmpStruct := reflect.StructOf([]reflect.StructField{
			{
				Name: "V",
				Type: ft,
				Tag:  `yaml:"v"`,
			},
		})
		tmpValue := reflect.New(tmpStruct)
		var out []byte
		if vv, ok := v.(string); ok {
			out = []byte("v: " + vv)
		} else if out, err = yaml.Marshal(map[string]any{"v": v}); err != nil {
			return
		}
		if err = yaml.Unmarshal(out, tmpValue.Interface()); err != nil {
			return target, fmt.Errorf("config %s: %w", k, err)
		}
		target = tmpValue.Elem().Field(0)
	}
	return
}

// Load parses target's defaults, then the YAML file at path (may be empty),
// then environment variables named PREFIX_SECTION_FIELD.
func Load(target any, path string, envPrefix string) error {
	var c Config
	if err := c.Parse(target, strings.ToUpper(envPrefix)); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var conf map[string]any
	if err = yaml.Unmarshal(data, &conf); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return c.ParseUserFile(conf)
}
