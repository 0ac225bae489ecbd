// Package i18n provides the message catalog used to phrase validation
// verdicts, calendar labels and component chrome. Catalogs are flat maps of
// dotted keys per locale, loaded from YAML or JSON bundles; the module ships
// English and Spanish bundles under locales/.
package i18n
